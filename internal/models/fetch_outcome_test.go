package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestOutcomeStatusIsTerminal(t *testing.T) {
	tests := []struct {
		status OutcomeStatus
		want   bool
	}{
		{StatusPending, false},
		{StatusFetching, false},
		{StatusSucceeded, true},
		{StatusFailed, true},
		{StatusTimedOut, true},
	}
	for _, tt := range tests {
		if got := tt.status.IsTerminal(); got != tt.want {
			t.Errorf("%s.IsTerminal() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestNewOutcomeRecordOmitsBody(t *testing.T) {
	rec := NewOutcomeRecord(FetchOutcome{
		RunID:    "run-1",
		Index:    2,
		URL:      "http://example.com",
		Status:   StatusSucceeded,
		Body:     "<html></html>",
		Duration: 1500 * time.Millisecond,
	})
	if rec.BodyBytes != len("<html></html>") || rec.DurationMs != 1500 || rec.Error != "" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(payload, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := raw["body"]; ok {
		t.Fatalf("body leaked into record: %s", payload)
	}
	if _, ok := raw["error"]; ok {
		t.Fatalf("empty error should be omitted: %s", payload)
	}
}

func TestNewOutcomeRecordCarriesError(t *testing.T) {
	rec := NewOutcomeRecord(FetchOutcome{Status: StatusFailed, Err: errors.New("connection refused")})
	if rec.Error != "connection refused" || rec.Status != StatusFailed {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

package models

import "time"

// FetchOutcome is the terminal result of one FetchJob. Body is set only on success,
// Err only on failure or timeout.
type FetchOutcome struct {
	RunID      string
	Index      int
	URL        string
	Status     OutcomeStatus
	Body       string
	Err        error
	Duration   time.Duration
	FinishedAt time.Time
}

// OutcomeRecord is the payload written to the outcomes and failures topics.
type OutcomeRecord struct {
	RunID      string        `json:"run_id"`
	Index      int           `json:"index"`
	URL        string        `json:"url"`
	Status     OutcomeStatus `json:"status"`
	BodyBytes  int           `json:"body_bytes"`
	Error      string        `json:"error,omitempty"`
	DurationMs int64         `json:"duration_ms"`
	FinishedAt time.Time     `json:"finished_at"`
}

// NewOutcomeRecord converts an outcome to its wire form; the body itself is never published.
func NewOutcomeRecord(o FetchOutcome) OutcomeRecord {
	rec := OutcomeRecord{
		RunID:      o.RunID,
		Index:      o.Index,
		URL:        o.URL,
		Status:     o.Status,
		BodyBytes:  len(o.Body),
		DurationMs: o.Duration.Milliseconds(),
		FinishedAt: o.FinishedAt,
	}
	if o.Err != nil {
		rec.Error = o.Err.Error()
	}
	return rec
}

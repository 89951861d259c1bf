package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"relentless-fetch/internal/models"
)

func TestHandlerMethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	Handler(rec, httptest.NewRequest(http.MethodPost, "/metrics", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestHandlerReportsCounters(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	TaskStarted()
	TaskStarted()
	TaskStarted()
	TaskFinished(models.StatusSucceeded)
	TaskFinished(models.StatusTimedOut)
	PageWritten(nil)
	PageWritten(errors.New("disk full"))
	RecordFailed()
	ObserveFetchLatency(80 * time.Millisecond)
	ObserveFetchLatency(10 * time.Second)

	rec := httptest.NewRecorder()
	Handler(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"relentless_fetch_tasks_started_total 3\n",
		"relentless_fetch_tasks_succeeded_total 1\n",
		"relentless_fetch_tasks_failed_total 0\n",
		"relentless_fetch_tasks_timed_out_total 1\n",
		"relentless_fetch_pages_written_total 1\n",
		"relentless_fetch_page_write_errors_total 1\n",
		"relentless_fetch_record_errors_total 1\n",
		"relentless_fetch_in_flight 1\n",
		"relentless_fetch_latency_seconds_bucket{le=\"0.05\"} 0\n",
		"relentless_fetch_latency_seconds_bucket{le=\"0.10\"} 1\n",
		"relentless_fetch_latency_seconds_bucket{le=\"5.00\"} 1\n",
		"relentless_fetch_latency_seconds_bucket{le=\"+Inf\"} 2\n",
		"relentless_fetch_latency_seconds_count 2\n",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q\n%s", want, body)
		}
	}
}

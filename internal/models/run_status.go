package models

import "time"

// Run status values stored in RunStatus.Status.
const (
	RunRunning   = "running"
	RunCompleted = "completed"
	RunAborted   = "aborted"
)

// RunStatus tracks the state of one fetcher invocation.
type RunStatus struct {
	RunID      string    `json:"run_id"`
	Source     string    `json:"source"`
	Status     string    `json:"status"`
	Total      int       `json:"total"`
	Succeeded  int       `json:"succeeded"`
	Failed     int       `json:"failed"`
	TimedOut   int       `json:"timed_out"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at,omitempty"`
}

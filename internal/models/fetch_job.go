package models

// FetchJob is one URL scheduled for a run, keyed by its input position.
type FetchJob struct {
	RunID string `json:"run_id"`
	Index int    `json:"index"`
	URL   string `json:"url"`
}

package models

// OutcomeStatus is the lifecycle state of one bounded fetch task.
type OutcomeStatus string

const (
	StatusPending   OutcomeStatus = "pending"
	StatusFetching  OutcomeStatus = "fetching"
	StatusSucceeded OutcomeStatus = "succeeded"
	StatusFailed    OutcomeStatus = "failed"
	StatusTimedOut  OutcomeStatus = "timed_out"
)

// IsTerminal reports whether the status is absorbing (succeeded, failed, timed out).
func (s OutcomeStatus) IsTerminal() bool {
	switch s {
	case StatusSucceeded, StatusFailed, StatusTimedOut:
		return true
	default:
		return false
	}
}

func (s OutcomeStatus) String() string {
	return string(s)
}

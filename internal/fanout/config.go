package fanout

import "time"

// DefaultTimeout is the per-task fetch deadline.
const DefaultTimeout = 510 * time.Millisecond

const defaultRecordTimeout = 10 * time.Second

// Config controls one coordinator run.
type Config struct {
	RunID string
	// Timeout bounds each fetch individually. Zero or negative means DefaultTimeout.
	Timeout time.Duration
	// Concurrency caps running tasks; zero or negative launches every task at once.
	Concurrency int
	// IsolateWriteErrors turns a failed page write into a Failed outcome for that
	// task only. When false, the first write error aborts the whole run.
	IsolateWriteErrors bool
	// RecordTimeout bounds each Recorder call so a stuck broker cannot stall a task.
	RecordTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.RecordTimeout <= 0 {
		c.RecordTimeout = defaultRecordTimeout
	}
	return c
}

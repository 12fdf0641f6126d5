package scheduler

import (
	"io"
	"time"
)

// Status is the execution state of a task within a run.
type Status string

const (
	StatusPending   Status = "pending"
	StatusReady     Status = "ready"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	// StatusBlocked marks a task that was never dispatched because a
	// dependency (direct or transitive) failed.
	StatusBlocked Status = "blocked"
	// StatusCancelled marks a task that was never dispatched because the run
	// was cancelled.
	StatusCancelled Status = "cancelled"
)

// Terminal reports whether the status is a terminal state.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusBlocked, StatusCancelled:
		return true
	}
	return false
}

// Config holds scheduler configuration.
type Config struct {
	MaxParallel    int           // max concurrently running tasks; 0 = unbounded
	TimeoutPerTask time.Duration // per-task work timeout; 0 = none
	Quiet          bool          // suppress per-task progress lines
	Out            io.Writer     // progress destination (default: os.Stderr)
}

// taskResult communicates task completion from worker goroutines to the
// event loop.
type taskResult struct {
	id  int
	err error
}

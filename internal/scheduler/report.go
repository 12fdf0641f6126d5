package scheduler

import "time"

// TaskTiming is the recorded execution window for one task.
type TaskTiming struct {
	Name     string     `json:"name"`
	Status   Status     `json:"status"`
	Start    *time.Time `json:"started_at,omitempty"`
	End      *time.Time `json:"finished_at,omitempty"`
	Expected float64    `json:"expected_seconds"`        // nominal duration
	Actual   float64    `json:"actual_seconds,omitempty"` // observed duration
	Critical bool       `json:"critical,omitempty"`
	Error    string     `json:"error,omitempty"`
}

// Report pairs the critical-path estimate with the observed wall-clock
// timings for a run. Tasks are listed in declaration order.
type Report struct {
	RunID         string       `json:"run_id"`
	Status        string       `json:"status"` // completed, failed, cancelled
	StartedAt     time.Time    `json:"started_at"`
	FinishedAt    time.Time    `json:"finished_at"`
	ExpectedTotal float64      `json:"expected_total_seconds"`
	ActualTotal   float64      `json:"actual_total_seconds"`
	Delta         float64      `json:"delta_seconds"`
	Tasks         []TaskTiming `json:"tasks"`
	Failed        []string     `json:"failed,omitempty"`
	Blocked       []string     `json:"blocked,omitempty"`
	Cancelled     []string     `json:"cancelled,omitempty"`
}

// Succeeded reports whether every task completed.
func (r *Report) Succeeded() bool {
	return r.Status == "completed"
}

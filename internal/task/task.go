package task

import (
	"fmt"
	"strings"
)

// Task is a single named unit of work: a nominal duration in seconds and the
// names of the tasks that must finish before it may start. Tasks are
// immutable once built from input.
type Task struct {
	Name      string   `json:"name"`
	Duration  float64  `json:"duration"` // seconds
	DependsOn []string `json:"depends_on,omitempty"`
}

// Validate checks the task's fields.
func (t *Task) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("task name must be a non-empty string")
	}
	if t.Duration < 0 {
		return fmt.Errorf("task %q: duration must be non-negative, got %g", t.Name, t.Duration)
	}
	for _, dep := range t.DependsOn {
		if dep == "" {
			return fmt.Errorf("task %q: dependency names must be non-empty", t.Name)
		}
	}
	return nil
}

func (t Task) String() string {
	deps := "none"
	if len(t.DependsOn) > 0 {
		deps = strings.Join(t.DependsOn, ", ")
	}
	return fmt.Sprintf("Task %q (duration: %gs, dependencies: %s)", t.Name, t.Duration, deps)
}

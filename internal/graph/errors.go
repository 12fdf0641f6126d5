package graph

import (
	"fmt"
	"strings"
)

// DuplicateTaskError reports a task name declared more than once.
type DuplicateTaskError struct {
	Name string
}

func (e *DuplicateTaskError) Error() string {
	return fmt.Sprintf("duplicate task name %q", e.Name)
}

// UnknownDependencyError reports a dependency on a task that was never
// declared.
type UnknownDependencyError struct {
	Task    string
	Missing string
}

func (e *UnknownDependencyError) Error() string {
	return fmt.Sprintf("task %q depends on unknown task %q", e.Task, e.Missing)
}

// CycleError reports a dependency cycle. Path is the ordered sequence of
// task names forming the cycle; it starts and ends at the same task, and
// each task in it depends on the next.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle detected: %s", strings.Join(e.Path, " -> "))
}

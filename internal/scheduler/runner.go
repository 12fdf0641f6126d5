package scheduler

import (
	"context"
	"time"

	"github.com/Baig73381/WhiteFiber/internal/task"
)

// Runner executes the work of a single task. The engine treats the work as
// opaque: it only observes elapsed time and success or failure.
type Runner interface {
	Run(ctx context.Context, t *task.Task) error
}

// SleepRunner simulates work by sleeping for the task's nominal duration.
// The sleep is cut short if the context expires, in which case the context
// error is returned.
type SleepRunner struct{}

func (SleepRunner) Run(ctx context.Context, t *task.Task) error {
	d := time.Duration(t.Duration * float64(time.Second))
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, t *task.Task) error

func (f RunnerFunc) Run(ctx context.Context, t *task.Task) error {
	return f(ctx, t)
}

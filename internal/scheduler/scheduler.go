// Package scheduler executes a validated task graph, dispatching each task
// the moment all of its dependencies have completed and recording per-task
// and total wall-clock timings.
package scheduler

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Baig73381/WhiteFiber/internal/cpm"
	"github.com/Baig73381/WhiteFiber/internal/graph"
	"github.com/Baig73381/WhiteFiber/internal/ui"
)

// Scheduler runs the tasks of a graph under the dependency partial order.
type Scheduler struct {
	Graph  *graph.Graph
	Est    *cpm.Result
	Config Config
	Runner Runner
	State  *RunState
}

// New creates a Scheduler with the default sleep runner.
func New(g *graph.Graph, est *cpm.Result, cfg Config) *Scheduler {
	if cfg.Out == nil {
		cfg.Out = os.Stderr
	}
	return &Scheduler{
		Graph:  g,
		Est:    est,
		Config: cfg,
		Runner: SleepRunner{},
	}
}

// Run executes every task and returns the schedule report. Tasks are gated
// by a per-task counter of unfinished dependencies; a single event loop
// receives completions and performs the decrement-and-dispatch step, so two
// completions can never race on the same counter.
//
// Cancelling ctx stops new dispatches; in-flight tasks run to completion.
// A non-nil error is returned when the run did not complete cleanly; the
// report is returned either way.
func (s *Scheduler) Run(ctx context.Context) (*Report, error) {
	n := s.Graph.TaskCount()

	names := make([]string, n)
	for id := 0; id < n; id++ {
		names[id] = s.Graph.Name(id)
	}
	s.State = newRunState(names)

	// Seed pending counters with each task's dependency count.
	pending := make([]int, n)
	for id := 0; id < n; id++ {
		pending[id] = len(s.Graph.RevAdj[id])
	}

	done := make(chan taskResult, n)
	var sem chan struct{}
	if s.Config.MaxParallel > 0 {
		sem = make(chan struct{}, s.Config.MaxParallel)
	}

	inflight := 0
	totalDone := 0
	finished := make([]bool, n)
	cancelled := false

	if !s.Config.Quiet {
		parallel := "unbounded"
		if s.Config.MaxParallel > 0 {
			parallel = fmt.Sprintf("max %d", s.Config.MaxParallel)
		}
		fmt.Fprintf(s.Config.Out, "%s (%d tasks, %s parallel)\n", ui.BoldCyan("Scheduler started"), n, parallel)
	}

	// Dispatch all root tasks
	for _, id := range s.Graph.Roots {
		s.dispatch(id, sem, done)
		inflight++
	}

	for totalDone < n {
		if ctx.Err() != nil {
			cancelled = true
		}

		// Nothing in flight but tasks remain: they are unreachable, either
		// cancelled before dispatch or blocked behind a failure.
		if inflight == 0 {
			for id := 0; id < n; id++ {
				if finished[id] {
					continue
				}
				if cancelled {
					s.markUndispatched(id, StatusCancelled)
				} else {
					s.markUndispatched(id, StatusBlocked)
				}
				finished[id] = true
				totalDone++
			}
			break
		}

		res := <-done
		inflight--
		finished[res.id] = true
		totalDone++

		// Re-check after a potentially long wait so no dependent is
		// dispatched once cancellation is requested.
		if ctx.Err() != nil {
			cancelled = true
		}

		if res.err != nil {
			if !s.Config.Quiet {
				fmt.Fprintf(s.Config.Out, "  %s %s %s\n", ui.Red("✗"), ui.TaskPrefix(names[res.id]), ui.Red(fmt.Sprintf("failed: %v", res.err)))
			}
			// Dependents of a failed task never become ready.
			totalDone += s.cascadeBlock(res.id, finished)
			continue
		}

		if !s.Config.Quiet {
			st := s.State.Get(res.id)
			fmt.Fprintf(s.Config.Out, "  %s %s %s\n", ui.Green("✓"), ui.TaskPrefix(names[res.id]),
				ui.Dim(fmt.Sprintf("(%.2fs)", st.FinishedAt.Sub(st.StartedAt).Seconds())))
		}

		for _, succ := range s.Graph.Adj[res.id] {
			if finished[succ] {
				continue
			}
			pending[succ]--
			if pending[succ] == 0 && !cancelled {
				s.dispatch(succ, sem, done)
				inflight++
			}
		}
	}

	report := s.buildReport(cancelled)

	switch report.Status {
	case "completed":
		return report, nil
	case "cancelled":
		return report, fmt.Errorf("run cancelled: %d of %d tasks completed", countStatus(report, StatusCompleted), n)
	default:
		return report, fmt.Errorf("run failed: %d tasks failed, %d blocked", len(report.Failed), len(report.Blocked))
	}
}

// dispatch transitions a task to ready and launches its worker: acquire the
// semaphore slot if bounded, execute the work, report on the done channel.
func (s *Scheduler) dispatch(id int, sem chan struct{}, done chan<- taskResult) {
	s.State.setStatus(id, StatusReady)
	t := s.Graph.Nodes[id]

	go func() {
		if sem != nil {
			sem <- struct{}{}
			defer func() { <-sem }()
		}

		s.State.markRunning(id)
		if !s.Config.Quiet {
			fmt.Fprintf(s.Config.Out, "  ▶ %s started\n", ui.TaskPrefix(t.Name))
		}

		// The work context is bounded only by the per-task timeout, never by
		// run cancellation: in-flight tasks are allowed to finish.
		wctx := context.Background()
		if s.Config.TimeoutPerTask > 0 {
			var cancel context.CancelFunc
			wctx, cancel = context.WithTimeout(wctx, s.Config.TimeoutPerTask)
			defer cancel()
		}

		err := s.Runner.Run(wctx, t)
		s.State.markDone(id, err)
		done <- taskResult{id: id, err: err}
	}()
}

// cascadeBlock performs BFS through the dependent graph from a failed task,
// marking every transitively dependent task as blocked. Returns the number
// of tasks blocked.
func (s *Scheduler) cascadeBlock(failedID int, finished []bool) int {
	blocked := 0
	var queue []int

	for _, succ := range s.Graph.Adj[failedID] {
		if !finished[succ] {
			queue = append(queue, succ)
		}
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		if finished[id] {
			continue
		}
		s.markUndispatched(id, StatusBlocked)
		finished[id] = true
		blocked++

		for _, succ := range s.Graph.Adj[id] {
			if !finished[succ] {
				queue = append(queue, succ)
			}
		}
	}

	return blocked
}

func (s *Scheduler) markUndispatched(id int, status Status) {
	s.State.setStatus(id, status)
	if s.Config.Quiet {
		return
	}
	switch status {
	case StatusBlocked:
		fmt.Fprintf(s.Config.Out, "  ⊘ %s %s\n", ui.TaskPrefix(s.Graph.Name(id)), ui.Yellow("blocked (dependency failed)"))
	case StatusCancelled:
		fmt.Fprintf(s.Config.Out, "  ⊘ %s %s\n", ui.TaskPrefix(s.Graph.Name(id)), ui.Dim("cancelled"))
	}
}

// buildReport assembles the schedule report from the recorded run state.
// Actual total is measured from the first task start to the last task end.
func (s *Scheduler) buildReport(cancelled bool) *Report {
	states := s.State.Snapshot()

	report := &Report{
		RunID:     fmt.Sprintf("fiber-%s", s.State.started.Format("2006-01-02-150405")),
		StartedAt: s.State.started,
	}
	if s.Est != nil {
		report.ExpectedTotal = s.Est.Total
	}

	var firstStart, lastEnd time.Time
	for id, st := range states {
		t := s.Graph.Nodes[id]

		timing := TaskTiming{
			Name:     st.Name,
			Status:   st.Status,
			Expected: t.Duration,
		}
		if s.Est != nil {
			if ts := s.Est.Schedule(st.Name); ts != nil {
				timing.Critical = ts.Critical
			}
		}
		if !st.StartedAt.IsZero() {
			start := st.StartedAt
			timing.Start = &start
			if firstStart.IsZero() || start.Before(firstStart) {
				firstStart = start
			}
		}
		if !st.FinishedAt.IsZero() {
			end := st.FinishedAt
			timing.End = &end
			timing.Actual = st.FinishedAt.Sub(st.StartedAt).Seconds()
			if end.After(lastEnd) {
				lastEnd = end
			}
		}
		if st.Err != nil {
			timing.Error = st.Err.Error()
		}

		report.Tasks = append(report.Tasks, timing)

		switch st.Status {
		case StatusFailed:
			report.Failed = append(report.Failed, st.Name)
		case StatusBlocked:
			report.Blocked = append(report.Blocked, st.Name)
		case StatusCancelled:
			report.Cancelled = append(report.Cancelled, st.Name)
		}
	}

	if !firstStart.IsZero() && !lastEnd.IsZero() {
		report.ActualTotal = lastEnd.Sub(firstStart).Seconds()
		report.FinishedAt = lastEnd
	} else {
		report.FinishedAt = report.StartedAt
	}
	report.Delta = report.ActualTotal - report.ExpectedTotal

	switch {
	case cancelled:
		report.Status = "cancelled"
	case len(report.Failed) > 0 || len(report.Blocked) > 0:
		report.Status = "failed"
	default:
		report.Status = "completed"
	}

	return report
}

func countStatus(r *Report, status Status) int {
	n := 0
	for _, t := range r.Tasks {
		if t.Status == status {
			n++
		}
	}
	return n
}

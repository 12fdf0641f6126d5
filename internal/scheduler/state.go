package scheduler

import (
	"sync"
	"time"
)

// TaskState is the recorded execution state of a single task.
type TaskState struct {
	Name       string
	Status     Status
	StartedAt  time.Time
	FinishedAt time.Time
	Err        error
}

// RunState tracks per-task execution state for one run. It is owned by the
// scheduler; workers record timings through it while the event loop drives
// status transitions, so access is serialized by a mutex.
type RunState struct {
	mu       sync.Mutex
	started  time.Time
	sessions []*TaskState // indexed by graph node id
}

func newRunState(names []string) *RunState {
	s := &RunState{
		started:  time.Now(),
		sessions: make([]*TaskState, len(names)),
	}
	for i, name := range names {
		s.sessions[i] = &TaskState{Name: name, Status: StatusPending}
	}
	return s
}

func (s *RunState) setStatus(id int, status Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id].Status = status
}

// markRunning records the start of a task's work.
func (s *RunState) markRunning(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ts := s.sessions[id]
	ts.Status = StatusRunning
	ts.StartedAt = time.Now()
}

// markDone records the end of a task's work, successful or not.
func (s *RunState) markDone(id int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ts := s.sessions[id]
	ts.FinishedAt = time.Now()
	ts.Err = err
	if err != nil {
		ts.Status = StatusFailed
	} else {
		ts.Status = StatusCompleted
	}
}

// Get returns a copy of a task's state.
func (s *RunState) Get(id int) TaskState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.sessions[id]
}

// Snapshot returns copies of all task states, indexed by node id.
func (s *RunState) Snapshot() []TaskState {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]TaskState, len(s.sessions))
	for i, ts := range s.sessions {
		out[i] = *ts
	}
	return out
}

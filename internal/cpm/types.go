package cpm

// Result holds the complete critical path analysis for a task graph.
type Result struct {
	Schedules    []*TaskSchedule // indexed by graph node id
	CriticalPath []string        // ordered task names on the critical path
	Total        float64         // expected total runtime in seconds
	Waves        []Wave          // parallelizable groups
	TopoOrder    []int

	byName map[string]*TaskSchedule
}

// TaskSchedule holds the scheduling info for a single task. All times are
// seconds from the start of the run.
type TaskSchedule struct {
	Name     string
	ES, EF   float64 // earliest start/finish
	LS, LF   float64 // latest start/finish
	Slack    float64
	Critical bool
	Wave     int
}

// Wave is a group of tasks that share the same earliest start time and can
// execute in parallel.
type Wave struct {
	Index    int
	Tasks    []string
	Critical bool // true if the wave contains critical path tasks
}

// Schedule returns the schedule for a task name, or nil if unknown.
func (r *Result) Schedule(name string) *TaskSchedule {
	return r.byName[name]
}

// Finish returns the earliest-possible-completion time for a task in
// seconds. Unknown names return 0.
func (r *Result) Finish(name string) float64 {
	if ts := r.byName[name]; ts != nil {
		return ts.EF
	}
	return 0
}

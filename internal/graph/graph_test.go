package graph

import (
	"errors"
	"testing"

	"github.com/Baig73381/WhiteFiber/internal/task"
)

func buildGraph(t *testing.T, tasks []task.Task) *Graph {
	t.Helper()
	g, err := Build(tasks)
	if err != nil {
		t.Fatalf("build graph: %v", err)
	}
	return g
}

func TestBuild_SimpleDAG(t *testing.T) {
	// A -> B -> D
	// A -> C -> D
	g := buildGraph(t, []task.Task{
		{Name: "TaskA", Duration: 5},
		{Name: "TaskB", Duration: 3, DependsOn: []string{"TaskA"}},
		{Name: "TaskC", Duration: 2, DependsOn: []string{"TaskA"}},
		{Name: "TaskD", Duration: 1, DependsOn: []string{"TaskB", "TaskC"}},
	})

	if g.TaskCount() != 4 {
		t.Errorf("expected 4 tasks, got %d", g.TaskCount())
	}

	a, _ := g.ID("TaskA")
	d, _ := g.ID("TaskD")

	if len(g.Roots) != 1 || g.Roots[0] != a {
		t.Errorf("expected roots=[TaskA], got %v", g.Roots)
	}
	if len(g.Leaves) != 1 || g.Leaves[0] != d {
		t.Errorf("expected leaves=[TaskD], got %v", g.Leaves)
	}
	if len(g.Adj[a]) != 2 {
		t.Errorf("expected TaskA to have 2 dependents, got %v", g.Adj[a])
	}
	if len(g.RevAdj[d]) != 2 {
		t.Errorf("expected TaskD to have 2 dependencies, got %v", g.RevAdj[d])
	}
}

func TestBuild_SingleTask(t *testing.T) {
	g := buildGraph(t, []task.Task{{Name: "TaskA", Duration: 5}})

	if g.TaskCount() != 1 {
		t.Errorf("expected 1 task, got %d", g.TaskCount())
	}
	if len(g.Roots) != 1 || len(g.Leaves) != 1 {
		t.Errorf("single task should be both root and leaf: roots=%v leaves=%v", g.Roots, g.Leaves)
	}
}

func TestBuild_Empty(t *testing.T) {
	g := buildGraph(t, nil)
	if g.TaskCount() != 0 {
		t.Errorf("expected 0 tasks, got %d", g.TaskCount())
	}
	if err := g.Validate(); err != nil {
		t.Errorf("empty graph should validate: %v", err)
	}
}

func TestBuild_DuplicateTask(t *testing.T) {
	_, err := Build([]task.Task{
		{Name: "TaskA", Duration: 1},
		{Name: "TaskA", Duration: 2},
	})
	var dup *DuplicateTaskError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateTaskError, got %v", err)
	}
	if dup.Name != "TaskA" {
		t.Errorf("expected duplicate name TaskA, got %q", dup.Name)
	}
}

func TestBuild_UnknownDependency(t *testing.T) {
	_, err := Build([]task.Task{
		{Name: "TaskA", Duration: 1, DependsOn: []string{"TaskX"}},
	})
	var unk *UnknownDependencyError
	if !errors.As(err, &unk) {
		t.Fatalf("expected UnknownDependencyError, got %v", err)
	}
	if unk.Task != "TaskA" || unk.Missing != "TaskX" {
		t.Errorf("expected {TaskA, TaskX}, got {%s, %s}", unk.Task, unk.Missing)
	}
}

func TestBuild_UnknownDependencyBeforeCycle(t *testing.T) {
	// The graph also contains a cycle, but the unresolved reference must be
	// reported first.
	_, err := Build([]task.Task{
		{Name: "TaskA", Duration: 1, DependsOn: []string{"TaskX"}},
		{Name: "TaskB", Duration: 1, DependsOn: []string{"TaskC"}},
		{Name: "TaskC", Duration: 1, DependsOn: []string{"TaskB"}},
	})
	var unk *UnknownDependencyError
	if !errors.As(err, &unk) {
		t.Fatalf("expected UnknownDependencyError before cycle detection, got %v", err)
	}
}

func TestBuild_DuplicateEdgeDeduped(t *testing.T) {
	g := buildGraph(t, []task.Task{
		{Name: "TaskA", Duration: 1},
		{Name: "TaskB", Duration: 1, DependsOn: []string{"TaskA", "TaskA"}},
	})
	a, _ := g.ID("TaskA")
	b, _ := g.ID("TaskB")
	if len(g.Adj[a]) != 1 || len(g.RevAdj[b]) != 1 {
		t.Errorf("repeated edge should be deduplicated: adj=%v rev=%v", g.Adj[a], g.RevAdj[b])
	}
}

func TestValidate_TwoNodeCycle(t *testing.T) {
	g := buildGraph(t, []task.Task{
		{Name: "TaskA", Duration: 1, DependsOn: []string{"TaskB"}},
		{Name: "TaskB", Duration: 1, DependsOn: []string{"TaskA"}},
	})

	err := g.Validate()
	var cyc *CycleError
	if !errors.As(err, &cyc) {
		t.Fatalf("expected CycleError, got %v", err)
	}

	want := []string{"TaskA", "TaskB", "TaskA"}
	if len(cyc.Path) != len(want) {
		t.Fatalf("expected path %v, got %v", want, cyc.Path)
	}
	for i := range want {
		if cyc.Path[i] != want[i] {
			t.Fatalf("expected path %v, got %v", want, cyc.Path)
		}
	}
}

func TestValidate_CyclePathIsValid(t *testing.T) {
	g := buildGraph(t, []task.Task{
		{Name: "TaskA", Duration: 1, DependsOn: []string{"TaskB"}},
		{Name: "TaskB", Duration: 1, DependsOn: []string{"TaskC"}},
		{Name: "TaskC", Duration: 1, DependsOn: []string{"TaskA"}},
	})

	err := g.Validate()
	var cyc *CycleError
	if !errors.As(err, &cyc) {
		t.Fatalf("expected CycleError, got %v", err)
	}

	path := cyc.Path
	if len(path) < 3 {
		t.Fatalf("cycle path too short: %v", path)
	}
	if path[0] != path[len(path)-1] {
		t.Errorf("cycle path must start and end at the same task: %v", path)
	}

	// Each consecutive pair must be a real depends-on edge.
	for i := 0; i+1 < len(path); i++ {
		from := g.Task(path[i])
		found := false
		for _, dep := range from.DependsOn {
			if dep == path[i+1] {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("%s does not depend on %s in path %v", path[i], path[i+1], path)
		}
	}
}

func TestValidate_SelfDependency(t *testing.T) {
	g := buildGraph(t, []task.Task{
		{Name: "TaskA", Duration: 1, DependsOn: []string{"TaskA"}},
	})
	err := g.Validate()
	var cyc *CycleError
	if !errors.As(err, &cyc) {
		t.Fatalf("expected CycleError for self-dependency, got %v", err)
	}
	if len(cyc.Path) != 2 || cyc.Path[0] != "TaskA" || cyc.Path[1] != "TaskA" {
		t.Errorf("expected path [TaskA TaskA], got %v", cyc.Path)
	}
}

func TestValidate_Acyclic(t *testing.T) {
	g := buildGraph(t, []task.Task{
		{Name: "TaskA", Duration: 1},
		{Name: "TaskB", Duration: 1, DependsOn: []string{"TaskA"}},
		{Name: "TaskC", Duration: 1, DependsOn: []string{"TaskA", "TaskB"}},
	})
	if err := g.Validate(); err != nil {
		t.Errorf("expected valid graph, got %v", err)
	}
	// Idempotent
	if err := g.Validate(); err != nil {
		t.Errorf("second validate should also pass: %v", err)
	}
}

func TestValidate_Deterministic(t *testing.T) {
	tasks := []task.Task{
		{Name: "TaskA", Duration: 1, DependsOn: []string{"TaskB"}},
		{Name: "TaskB", Duration: 1, DependsOn: []string{"TaskA"}},
		{Name: "TaskC", Duration: 1, DependsOn: []string{"TaskD"}},
		{Name: "TaskD", Duration: 1, DependsOn: []string{"TaskC"}},
	}

	var first []string
	for i := 0; i < 5; i++ {
		g := buildGraph(t, tasks)
		err := g.Validate()
		var cyc *CycleError
		if !errors.As(err, &cyc) {
			t.Fatalf("expected CycleError, got %v", err)
		}
		if first == nil {
			first = cyc.Path
			continue
		}
		if len(cyc.Path) != len(first) {
			t.Fatalf("nondeterministic cycle path: %v vs %v", first, cyc.Path)
		}
		for j := range first {
			if cyc.Path[j] != first[j] {
				t.Fatalf("nondeterministic cycle path: %v vs %v", first, cyc.Path)
			}
		}
	}
}

package graph

import "github.com/Baig73381/WhiteFiber/internal/task"

// Graph is a directed acyclic dependency graph over tasks. Nodes are indexed
// by a stable integer id assigned in declaration order; adjacency is stored
// as id lists so the scheduler can unblock dependents in O(out-degree).
// The graph is read-only after Build.
type Graph struct {
	Nodes  []*task.Task
	Adj    [][]int // node -> nodes that depend on it
	RevAdj [][]int // node -> nodes it depends on
	Roots  []int   // nodes with no dependencies
	Leaves []int   // nodes nothing depends on

	ids map[string]int
}

// ID returns the node id for a task name.
func (g *Graph) ID(name string) (int, bool) {
	id, ok := g.ids[name]
	return id, ok
}

// Name returns the task name for a node id.
func (g *Graph) Name(id int) string {
	return g.Nodes[id].Name
}

// Task returns the task for a name, or nil if unknown.
func (g *Graph) Task(name string) *task.Task {
	if id, ok := g.ids[name]; ok {
		return g.Nodes[id]
	}
	return nil
}

// TaskCount returns the number of tasks in the graph.
func (g *Graph) TaskCount() int {
	return len(g.Nodes)
}

package graph

import (
	"sort"

	"github.com/Baig73381/WhiteFiber/internal/task"
)

// Build constructs a Graph from task declarations. It rejects duplicate task
// names and unresolved dependency references; unresolved references are
// reported in declaration order, before any cycle detection runs.
func Build(tasks []task.Task) (*Graph, error) {
	g := &Graph{ids: make(map[string]int, len(tasks))}

	// Index all tasks by declaration order
	for i := range tasks {
		t := tasks[i]
		if err := t.Validate(); err != nil {
			return nil, err
		}
		if _, ok := g.ids[t.Name]; ok {
			return nil, &DuplicateTaskError{Name: t.Name}
		}
		g.ids[t.Name] = len(g.Nodes)
		g.Nodes = append(g.Nodes, &t)
	}

	n := len(g.Nodes)
	g.Adj = make([][]int, n)
	g.RevAdj = make([][]int, n)

	// Resolve dependency names to ids and wire edges, deduplicating
	// repeated declarations of the same edge.
	edgeSet := make(map[[2]int]bool)
	for id, t := range g.Nodes {
		for _, dep := range t.DependsOn {
			depID, ok := g.ids[dep]
			if !ok {
				return nil, &UnknownDependencyError{Task: t.Name, Missing: dep}
			}
			key := [2]int{depID, id}
			if edgeSet[key] {
				continue
			}
			edgeSet[key] = true
			g.Adj[depID] = append(g.Adj[depID], id)
			g.RevAdj[id] = append(g.RevAdj[id], depID)
		}
	}

	// Sort adjacency lists for deterministic traversal
	for i := range g.Adj {
		sort.Ints(g.Adj[i])
	}
	for i := range g.RevAdj {
		sort.Ints(g.RevAdj[i])
	}

	for id := 0; id < n; id++ {
		if len(g.RevAdj[id]) == 0 {
			g.Roots = append(g.Roots, id)
		}
		if len(g.Adj[id]) == 0 {
			g.Leaves = append(g.Leaves, id)
		}
	}

	return g, nil
}

// Validate checks that the dependency relation is acyclic. On failure it
// returns a CycleError whose path starts and ends at the repeated task.
// Validate is read-only and idempotent.
func (g *Graph) Validate() error {
	if cycle := g.detectCycle(); cycle != nil {
		path := make([]string, len(cycle))
		for i, id := range cycle {
			path[i] = g.Nodes[id].Name
		}
		return &CycleError{Path: path}
	}
	return nil
}

// detectCycle returns the cycle path if one exists, or nil if the graph is
// acyclic. DFS with coloring over the depends-on direction: white
// (unvisited), gray (in progress), black (done). Nodes are visited in id
// order, so detection is deterministic.
func (g *Graph) detectCycle() []int {
	const (
		white = iota
		gray
		black
	)

	color := make([]int, len(g.Nodes))
	parent := make([]int, len(g.Nodes))
	for i := range parent {
		parent[i] = -1
	}

	var dfs func(node int) []int
	dfs = func(node int) []int {
		color[node] = gray
		for _, next := range g.RevAdj[node] {
			if color[next] == gray {
				// Found a cycle: walk parents back to the repeated node.
				// The walk yields the path in reverse, closed at both ends.
				cycle := []int{next, node}
				for cur := node; cur != next; {
					cur = parent[cur]
					cycle = append(cycle, cur)
				}
				for i, j := 0, len(cycle)-1; i < j; i, j = i+1, j-1 {
					cycle[i], cycle[j] = cycle[j], cycle[i]
				}
				return cycle
			}
			if color[next] == white {
				parent[next] = node
				if cycle := dfs(next); cycle != nil {
					return cycle
				}
			}
		}
		color[node] = black
		return nil
	}

	for id := range g.Nodes {
		if color[id] == white {
			if cycle := dfs(id); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}

// Package cpm computes critical-path estimates over a validated task graph:
// the minimum wall-clock time achievable with unbounded parallel workers and
// zero scheduling overhead.
package cpm

import (
	"fmt"
	"sort"

	"github.com/Baig73381/WhiteFiber/internal/graph"
)

// slackEpsilon absorbs float rounding when comparing slack against zero.
const slackEpsilon = 1e-9

// Analyze performs critical path method analysis on a task graph. Runs in
// O(V+E); each node is evaluated only after all of its dependencies.
func Analyze(g *graph.Graph) (*Result, error) {
	order, err := topoSort(g)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Schedules: make([]*TaskSchedule, g.TaskCount()),
		TopoOrder: order,
		byName:    make(map[string]*TaskSchedule, g.TaskCount()),
	}
	for _, id := range order {
		ts := &TaskSchedule{Name: g.Name(id)}
		result.Schedules[id] = ts
		result.byName[ts.Name] = ts
	}

	// Forward pass: ES = max EF over dependencies, EF = ES + duration.
	for _, id := range order {
		ts := result.Schedules[id]
		es := 0.0
		for _, dep := range g.RevAdj[id] {
			if ef := result.Schedules[dep].EF; ef > es {
				es = ef
			}
		}
		ts.ES = es
		ts.EF = es + g.Nodes[id].Duration
		if ts.EF > result.Total {
			result.Total = ts.EF
		}
	}

	// Backward pass: LF = min LS over dependents, or the total for leaves.
	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]
		ts := result.Schedules[id]

		lf := result.Total
		for _, succ := range g.Adj[id] {
			if ls := result.Schedules[succ].LS; ls < lf {
				lf = ls
			}
		}
		ts.LF = lf
		ts.LS = lf - g.Nodes[id].Duration
		ts.Slack = ts.LS - ts.ES
		ts.Critical = ts.Slack < slackEpsilon
	}

	// Critical path: critical tasks in topological order
	for _, id := range order {
		if result.Schedules[id].Critical {
			result.CriticalPath = append(result.CriticalPath, g.Name(id))
		}
	}

	result.Waves = computeWaves(result, g)

	return result, nil
}

// topoSort performs Kahn's algorithm over the graph. The id order of the
// arena makes the result deterministic.
func topoSort(g *graph.Graph) ([]int, error) {
	n := g.TaskCount()
	inDegree := make([]int, n)
	var queue []int
	for id := 0; id < n; id++ {
		inDegree[id] = len(g.RevAdj[id])
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	var order []int
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		order = append(order, node)

		for _, succ := range g.Adj[node] {
			inDegree[succ]--
			if inDegree[succ] == 0 {
				queue = append(queue, succ)
			}
		}
	}

	if len(order) != n {
		return nil, fmt.Errorf("topological sort failed: graph has a cycle (%d of %d tasks sorted)", len(order), n)
	}

	return order, nil
}

// computeWaves groups tasks by their earliest start time. Within a wave the
// identical ES values come from the same max computation, so float equality
// is exact.
func computeWaves(result *Result, g *graph.Graph) []Wave {
	esGroups := make(map[float64][]int)
	for _, id := range result.TopoOrder {
		es := result.Schedules[id].ES
		esGroups[es] = append(esGroups[es], id)
	}

	esValues := make([]float64, 0, len(esGroups))
	for es := range esGroups {
		esValues = append(esValues, es)
	}
	sort.Float64s(esValues)

	waves := make([]Wave, len(esValues))
	for i, es := range esValues {
		ids := esGroups[es]
		sort.Ints(ids)

		hasCritical := false
		names := make([]string, len(ids))
		for j, id := range ids {
			result.Schedules[id].Wave = i
			names[j] = g.Name(id)
			if result.Schedules[id].Critical {
				hasCritical = true
			}
		}

		waves[i] = Wave{Index: i, Tasks: names, Critical: hasCritical}
	}

	return waves
}

// Package report renders critical-path analyses and run outcomes for both
// terminals and machine consumers.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Baig73381/WhiteFiber/internal/cpm"
	"github.com/Baig73381/WhiteFiber/internal/graph"
	"github.com/Baig73381/WhiteFiber/internal/scheduler"
	"github.com/Baig73381/WhiteFiber/internal/ui"
)

// Reporter provides status display for a task graph and, once executed,
// its run outcome.
type Reporter struct {
	Graph *graph.Graph
	Est   *cpm.Result
	Run   *scheduler.Report // nil until the graph has been executed
}

// New creates a Reporter over an analyzed graph.
func New(g *graph.Graph, est *cpm.Result) *Reporter {
	return &Reporter{Graph: g, Est: est}
}

// PrintPlan writes the validation view: each task with its dependencies,
// the expected total runtime, the critical path and the parallel waves.
func (r *Reporter) PrintPlan(w io.Writer) {
	fmt.Fprintf(w, "%s\n", ui.BoldCyan("Execution Plan"))
	fmt.Fprintf(w, "%s\n\n", ui.Cyan("═══════════════════════════"))

	fmt.Fprintf(w, "Tasks:     %s (%d independent, %d final)\n",
		ui.Bold(r.Graph.TaskCount()), len(r.Graph.Roots), len(r.Graph.Leaves))
	fmt.Fprintf(w, "Expected:  %s\n", ui.Bold(formatSeconds(r.Est.Total)))
	if len(r.Est.CriticalPath) > 0 {
		fmt.Fprintf(w, "Critical:  %s\n", ui.BoldYellow("⚡ "+strings.Join(r.Est.CriticalPath, " → ")))
	}
	fmt.Fprintf(w, "Waves:     %s\n\n", ui.Bold(len(r.Est.Waves)))

	for _, wave := range r.Est.Waves {
		depStr := ui.Dim("independent")
		if wave.Index > 0 {
			depStr = ui.Dim(fmt.Sprintf("after wave %d", wave.Index))
		}
		fmt.Fprintf(w, "🌊 %s %d (%d tasks, %s):\n", ui.BoldWhite("Wave"), wave.Index+1, len(wave.Tasks), depStr)
		for _, name := range wave.Tasks {
			r.printPlanTask(w, name)
		}
		fmt.Fprintln(w)
	}
}

func (r *Reporter) printPlanTask(w io.Writer, name string) {
	t := r.Graph.Task(name)
	ts := r.Est.Schedule(name)

	crit := " "
	if ts != nil && ts.Critical {
		crit = ui.BoldYellow("⚡")
	}

	deps := ui.Dim("no dependencies")
	if len(t.DependsOn) > 0 {
		deps = ui.Dim("after " + strings.Join(t.DependsOn, ", "))
	}

	window := ""
	if ts != nil {
		window = ui.Dim(fmt.Sprintf("[%s → %s]", formatSeconds(ts.ES), formatSeconds(ts.EF)))
	}

	fmt.Fprintf(w, "  %s %s %s %s  %s\n",
		crit, ui.TaskPrefix(name), ui.Bold(formatSeconds(t.Duration)), window, deps)
}

// PrintSummary writes the post-run summary: overall status, expected versus
// actual wall-clock time, a per-task table and failure details.
func (r *Reporter) PrintSummary(w io.Writer) {
	run := r.Run

	statusText := ui.BoldGreen("completed")
	statusEmoji := "✅"
	switch run.Status {
	case "failed":
		statusText = ui.BoldRed("failed")
		statusEmoji = "❌"
	case "cancelled":
		statusText = ui.Yellow("cancelled")
		statusEmoji = "🚫"
	}

	fmt.Fprintf(w, "\n%s %s\n", statusEmoji, ui.BoldCyan("Run Summary"))
	fmt.Fprintf(w, "%s\n", ui.Cyan("══════════════════════════"))
	fmt.Fprintf(w, "Run:       %s\n", ui.Dim(run.RunID))
	fmt.Fprintf(w, "Status:    %s\n", statusText)
	fmt.Fprintf(w, "Expected:  %s\n", ui.Bold(formatSeconds(run.ExpectedTotal)))
	fmt.Fprintf(w, "Actual:    %s %s\n", ui.Bold(formatSeconds(run.ActualTotal)), r.deltaString())
	fmt.Fprintf(w, "Tasks:     %d total\n\n", len(run.Tasks))

	for _, tt := range run.Tasks {
		r.printSummaryTask(w, tt)
	}

	completed := 0
	for _, tt := range run.Tasks {
		if tt.Status == scheduler.StatusCompleted {
			completed++
		}
	}

	fmt.Fprintf(w, "\n%s\n", ui.Cyan("──────────────────────────"))
	fmt.Fprintf(w, "Totals:  %s  %s  %s",
		ui.Green(fmt.Sprintf("%d completed", completed)),
		ui.Red(fmt.Sprintf("%d failed", len(run.Failed))),
		ui.Yellow(fmt.Sprintf("%d blocked", len(run.Blocked))))
	if len(run.Cancelled) > 0 {
		fmt.Fprintf(w, "  %s", ui.Dim(fmt.Sprintf("%d cancelled", len(run.Cancelled))))
	}
	fmt.Fprintln(w)

	if len(r.Est.CriticalPath) > 0 {
		fmt.Fprintf(w, "Critical:  %s\n", ui.BoldYellow("⚡ "+strings.Join(r.Est.CriticalPath, " → ")))
	}

	if len(run.Failed) > 0 {
		fmt.Fprintf(w, "\n%s\n", ui.BoldRed("Failed tasks:"))
		for _, tt := range run.Tasks {
			if tt.Status != scheduler.StatusFailed {
				continue
			}
			fmt.Fprintf(w, "  %s %s  %s\n", ui.Red("✗"), ui.TaskPrefix(tt.Name), ui.Dim(tt.Error))
		}
	}
}

func (r *Reporter) printSummaryTask(w io.Writer, tt scheduler.TaskTiming) {
	icon := ui.StatusIcon(string(tt.Status))

	crit := " "
	if tt.Critical {
		crit = ui.BoldYellow("⚡")
	}

	timeCol := ""
	switch tt.Status {
	case scheduler.StatusCompleted:
		timeCol = ui.Dim(fmt.Sprintf("[%s, expected %s]", formatSeconds(tt.Actual), formatSeconds(tt.Expected)))
	case scheduler.StatusFailed:
		timeCol = ui.Red(fmt.Sprintf("[failed after %s]", formatSeconds(tt.Actual)))
	case scheduler.StatusBlocked:
		timeCol = ui.Yellow("[blocked]")
	case scheduler.StatusCancelled:
		timeCol = ui.Dim("[cancelled]")
	}

	fmt.Fprintf(w, "  %s %s %s  %s\n", icon, crit, ui.TaskPrefix(tt.Name), timeCol)
}

// deltaString renders actual-minus-expected as a signed offset with a
// percentage, colored by direction.
func (r *Reporter) deltaString() string {
	run := r.Run
	if run.ExpectedTotal <= 0 {
		return ""
	}
	pct := run.Delta / run.ExpectedTotal * 100
	s := fmt.Sprintf("(%+.2fs, %+.1f%%)", run.Delta, pct)
	if run.Delta > 0 {
		return ui.Yellow(s)
	}
	return ui.Dim(s)
}

// PrintDeltas writes the verbose per-task comparison of expected versus
// actual duration for every task that ran.
func (r *Reporter) PrintDeltas(w io.Writer) {
	fmt.Fprintf(w, "\n%s\n", ui.BoldCyan("Per-task timing"))
	for _, tt := range r.Run.Tasks {
		if tt.Start == nil || tt.End == nil {
			continue
		}
		diff := tt.Actual - tt.Expected
		diffStr := fmt.Sprintf("%+.2fs", diff)
		if diff > 0 {
			diffStr = ui.Yellow(diffStr)
		} else {
			diffStr = ui.Dim(diffStr)
		}
		fmt.Fprintf(w, "  %s expected %s, actual %s (%s)\n",
			ui.TaskPrefix(tt.Name), formatSeconds(tt.Expected), formatSeconds(tt.Actual), diffStr)
	}
}

// PlanJSON returns the machine-readable analysis view.
func (r *Reporter) PlanJSON() ([]byte, error) {
	type planTask struct {
		Name           string   `json:"name"`
		Duration       float64  `json:"duration_seconds"`
		DependsOn      []string `json:"depends_on,omitempty"`
		EarliestStart  float64  `json:"earliest_start"`
		EarliestFinish float64  `json:"earliest_finish"`
		Slack          float64  `json:"slack"`
		Critical       bool     `json:"critical"`
		Wave           int      `json:"wave"`
	}

	type plan struct {
		TotalTasks    int        `json:"total_tasks"`
		ExpectedTotal float64    `json:"expected_total_seconds"`
		CriticalPath  []string   `json:"critical_path"`
		Waves         []cpm.Wave `json:"waves"`
		Tasks         []planTask `json:"tasks"`
	}

	p := plan{
		TotalTasks:    r.Graph.TaskCount(),
		ExpectedTotal: r.Est.Total,
		CriticalPath:  r.Est.CriticalPath,
		Waves:         r.Est.Waves,
	}
	for id, t := range r.Graph.Nodes {
		ts := r.Est.Schedules[id]
		p.Tasks = append(p.Tasks, planTask{
			Name:           t.Name,
			Duration:       t.Duration,
			DependsOn:      t.DependsOn,
			EarliestStart:  ts.ES,
			EarliestFinish: ts.EF,
			Slack:          ts.Slack,
			Critical:       ts.Critical,
			Wave:           ts.Wave,
		})
	}

	return json.MarshalIndent(p, "", "  ")
}

// JSON returns the machine-readable run report, or the plan view when the
// graph has not been executed.
func (r *Reporter) JSON() ([]byte, error) {
	if r.Run == nil {
		return r.PlanJSON()
	}
	return json.MarshalIndent(r.Run, "", "  ")
}

// formatSeconds renders a duration in seconds compactly: sub-minute values
// keep two decimals, longer ones use the standard duration notation.
func formatSeconds(s float64) string {
	if s < 60 {
		return fmt.Sprintf("%.2fs", s)
	}
	d := time.Duration(s * float64(time.Second))
	return d.Truncate(time.Second).String()
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Baig73381/WhiteFiber/internal/config"
	"github.com/Baig73381/WhiteFiber/internal/cpm"
	"github.com/Baig73381/WhiteFiber/internal/graph"
	"github.com/Baig73381/WhiteFiber/internal/parser"
	"github.com/Baig73381/WhiteFiber/internal/report"
	"github.com/Baig73381/WhiteFiber/internal/scheduler"
	"github.com/Baig73381/WhiteFiber/internal/task"
	"github.com/Baig73381/WhiteFiber/internal/ui"
	"github.com/spf13/cobra"
)

var (
	flagFile        string
	flagInput       string
	flagConfig      string
	flagJSON        bool
	flagMaxParallel int
	flagTimeout     string
	flagQuiet       bool
	flagFormat      string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "whitefiber",
		Short: "Run dependency-ordered tasks in parallel",
		Long: `Whitefiber reads a task list with durations and dependencies, validates
the dependency graph, computes the critical-path runtime estimate, then
executes the tasks concurrently while honoring every dependency.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&flagFile, "file", "f", "", "Read tasks from a file (.csv or .json)")
	rootCmd.PersistentFlags().StringVarP(&flagInput, "input", "i", "", "Read tasks from an inline string")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default .whitefiber.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Machine-readable JSON output")

	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(vizCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// load reads tasks from --file or --input and produces the analyzed graph.
// Shared by every command.
func load() (*graph.Graph, *cpm.Result, error) {
	if flagFile != "" && flagInput != "" {
		return nil, nil, fmt.Errorf("--file and --input are mutually exclusive")
	}

	var (
		tasks []task.Task
		err   error
	)
	switch {
	case flagFile != "":
		tasks, err = parser.ParseFile(flagFile)
	case flagInput != "":
		tasks, err = parser.ParseText(flagInput)
	default:
		return nil, nil, fmt.Errorf("no input: use --file or --input")
	}
	if err != nil {
		return nil, nil, err
	}

	g, err := graph.Build(tasks)
	if err != nil {
		return nil, nil, fmt.Errorf("build task graph: %w", err)
	}
	if err := g.Validate(); err != nil {
		return nil, nil, err
	}

	est, err := cpm.Analyze(g)
	if err != nil {
		return nil, nil, fmt.Errorf("critical path analysis: %w", err)
	}

	return g, est, nil
}

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Parse the task list, validate the graph and print the plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, est, err := load()
			if err != nil {
				return err
			}

			rpt := report.New(g, est)
			if flagJSON {
				data, err := rpt.JSON()
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			rpt.PrintPlan(os.Stdout)
			return nil
		},
	}
	return cmd
}

func runCmd() *cobra.Command {
	var flagVerbose bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute the task graph",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flagConfig)
			if err != nil {
				return err
			}

			// Config file fills in flags the user did not set.
			if !cmd.Flags().Changed("max-parallel") && cfg.MaxParallel != nil {
				flagMaxParallel = *cfg.MaxParallel
			}
			if !cmd.Flags().Changed("timeout") && cfg.Timeout != "" {
				flagTimeout = cfg.Timeout
			}
			if !cmd.Flags().Changed("quiet") && cfg.Quiet != nil {
				flagQuiet = *cfg.Quiet
			}
			if !cmd.Flags().Changed("json") && cfg.Format == "json" {
				flagJSON = true
			}

			if flagMaxParallel < 0 {
				return fmt.Errorf("--max-parallel must be >= 0 (0 means unbounded)")
			}

			var timeout time.Duration
			if flagTimeout != "" {
				timeout, err = time.ParseDuration(flagTimeout)
				if err != nil {
					return fmt.Errorf("parse timeout: %w", err)
				}
			}

			g, est, err := load()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigCh)
			go func() {
				<-sigCh
				fmt.Fprintf(os.Stderr, "\n🛑 %s\n", ui.Yellow("Received interrupt, letting running tasks finish..."))
				cancel()
			}()

			if !flagJSON && !flagQuiet {
				ui.PrintLogo()
				fmt.Fprintf(os.Stderr, "🚀 %s executing %s tasks (expected %s)\n",
					ui.BoldCyan("Whitefiber:"), ui.Bold(g.TaskCount()),
					ui.Bold(fmt.Sprintf("%.2fs", est.Total)))
			}

			sched := scheduler.New(g, est, scheduler.Config{
				MaxParallel:    flagMaxParallel,
				TimeoutPerTask: timeout,
				Quiet:          flagQuiet || flagJSON,
			})

			run, runErr := sched.Run(ctx)

			rpt := report.New(g, est)
			rpt.Run = run

			if flagJSON {
				data, err := rpt.JSON()
				if err != nil {
					return err
				}
				fmt.Println(string(data))
			} else {
				rpt.PrintSummary(os.Stdout)
				if flagVerbose {
					rpt.PrintDeltas(os.Stdout)
				}
			}

			return runErr
		},
	}

	cmd.Flags().IntVar(&flagMaxParallel, "max-parallel", 0, "Max concurrent tasks (0 = unbounded)")
	cmd.Flags().StringVar(&flagTimeout, "timeout", "", "Per-task timeout (e.g. 30s, 5m)")
	cmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress per-task progress output")
	cmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Show per-task expected vs actual timing after the run")

	return cmd
}

func vizCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "viz",
		Short: "Print the dependency graph",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, est, err := load()
			if err != nil {
				return err
			}

			if flagFormat == "dot" {
				printDOT(g, est)
				return nil
			}

			printASCIIDAG(g, est)
			return nil
		},
	}

	cmd.Flags().StringVar(&flagFormat, "format", "ascii", "Output format (ascii, dot)")

	return cmd
}

func printASCIIDAG(g *graph.Graph, est *cpm.Result) {
	fmt.Printf("🔗 %s\n", ui.BoldCyan("Task Dependency Graph"))
	fmt.Println(ui.Cyan("═══════════════════════"))
	fmt.Println()

	for _, wave := range est.Waves {
		fmt.Printf("%s 🌊 Wave %d %s\n", ui.Cyan("──"), wave.Index+1, ui.Cyan("──────────────────────────────"))
		for _, name := range wave.Tasks {
			crit := " "
			if ts := est.Schedule(name); ts != nil && ts.Critical {
				crit = ui.BoldYellow("⚡")
			}
			id, _ := g.ID(name)
			fmt.Printf("  %s %s %s\n", crit, ui.TaskPrefix(name), ui.Dim(fmt.Sprintf("%gs", g.Nodes[id].Duration)))

			for _, succ := range g.Adj[id] {
				fmt.Printf("      %s %s\n", ui.Dim("└──→"), ui.Magenta(g.Name(succ)))
			}
		}
		fmt.Println()
	}
}

func printDOT(g *graph.Graph, est *cpm.Result) {
	fmt.Println("digraph whitefiber {")
	fmt.Println("  rankdir=LR;")
	fmt.Println("  node [shape=box, style=rounded];")
	fmt.Println()

	for _, t := range g.Nodes {
		label := fmt.Sprintf("%s\\n%gs", t.Name, t.Duration)
		attrs := fmt.Sprintf(`label="%s"`, label)
		if ts := est.Schedule(t.Name); ts != nil && ts.Critical {
			attrs += `, style="rounded,bold", color=red`
		}
		fmt.Printf("  %q [%s];\n", t.Name, attrs)
	}

	fmt.Println()

	for id, succs := range g.Adj {
		from := g.Name(id)
		for _, succ := range succs {
			to := g.Name(succ)
			style := ""
			fromTS, toTS := est.Schedule(from), est.Schedule(to)
			if fromTS != nil && fromTS.Critical && toTS != nil && toTS.Critical {
				style = ` [color=red, penwidth=2]`
			}
			fmt.Printf("  %q -> %q%s;\n", from, to, style)
		}
	}

	fmt.Println("}")
}

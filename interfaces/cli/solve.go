package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/goap-go/infrastructure/catalog"
	api "github.com/felixgeelhaar/goap-go/interfaces/api"
)

// solveOptions holds options for the solve command.
type solveOptions struct {
	scenarioPath  string
	strategy      string
	maxExpansions int
	output        string
	verify        bool
	stats         bool
	watch         bool
}

// newSolveCmd creates the solve command.
func (a *App) newSolveCmd() *cobra.Command {
	opts := &solveOptions{}

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Plan a scenario",
		Long: `Plan a scenario: load the start state, goal, and action catalog from
a scenario file and search for the cheapest action sequence reaching
the goal.

The command fails when no plan exists within the expansion budget.

Examples:
  # Plan a scenario file
  goap solve -f scenario.yaml

  # Minimize action count instead of summed cost
  goap solve -f scenario.yaml --strategy minimize-actions

  # Bound the search and show its statistics
  goap solve -f scenario.yaml --max-expansions 5000 --stats

  # Machine-readable output, replaying the plan as a check
  goap solve -f scenario.yaml --output json --verify

  # Re-plan whenever the file changes
  goap solve -f scenario.yaml --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.solveScenario(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.scenarioPath, "file", "f", "", "Path to scenario file (required)")
	cmd.Flags().StringVar(&opts.strategy, "strategy", "", "Planning strategy: minimize-cost or minimize-actions (overrides scenario)")
	cmd.Flags().IntVar(&opts.maxExpansions, "max-expansions", 0, "Maximum nodes to expand (overrides scenario)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&opts.verify, "verify", false, "Replay the plan and check it reaches the goal")
	cmd.Flags().BoolVar(&opts.stats, "stats", false, "Show search statistics")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Re-plan whenever the scenario file changes")

	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// solveScenario loads the scenario and plans it, once or on every change.
func (a *App) solveScenario(ctx context.Context, opts *solveOptions) error {
	if opts.output != "text" && opts.output != "json" {
		return fmt.Errorf("unknown output format %q (use text or json)", opts.output)
	}

	loader := catalog.NewLoader()
	scn, err := loader.LoadFile(opts.scenarioPath)
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}

	if opts.watch {
		return a.watchScenario(ctx, loader, scn, opts)
	}
	return a.solveOnce(scn, opts)
}

// solveOnce compiles and plans a single loaded scenario.
func (a *App) solveOnce(scn *catalog.Scenario, opts *solveOptions) error {
	compiled, err := scn.Compile()
	if err != nil {
		return fmt.Errorf("failed to compile scenario: %w", err)
	}

	// Override scenario settings with CLI options
	if opts.strategy != "" {
		s, err := api.ParseStrategy(opts.strategy)
		if err != nil {
			return err
		}
		compiled.Strategy = s
	}
	if opts.maxExpansions > 0 {
		compiled.MaxExpansions = opts.maxExpansions
	}

	p, err := api.NewPlanner(
		api.WithStrategy(compiled.Strategy),
		api.WithMaxExpansions(compiled.MaxExpansions),
	)
	if err != nil {
		return fmt.Errorf("failed to create planner: %w", err)
	}

	startTime := time.Now()
	result, stats, found := p.FindPlanStats(compiled.Start, compiled.Actions, compiled.Goal)
	duration := time.Since(startTime)

	if found && opts.verify {
		if err := api.VerifyPlan(result, compiled.Goal); err != nil {
			return fmt.Errorf("plan verification failed: %w", err)
		}
	}

	if opts.output == "json" {
		if err := a.writeJSON(compiled, result, stats, found, duration, opts); err != nil {
			return err
		}
	} else {
		a.writeText(compiled, result, stats, found, duration, opts)
	}

	if !found {
		if stats.BudgetExhausted {
			return fmt.Errorf("%w for scenario %q: expansion budget exhausted after %d nodes",
				api.ErrNoPlanFound, compiled.Name, stats.NodesExpanded)
		}
		return fmt.Errorf("%w for scenario %q: goal unreachable", api.ErrNoPlanFound, compiled.Name)
	}
	return nil
}

// writeText renders the outcome for humans.
func (a *App) writeText(c *catalog.Compiled, result *api.Plan, stats api.Stats, found bool, duration time.Duration, opts *solveOptions) {
	fmt.Fprintf(a.stdout, "Scenario: %s\n", c.Name)
	fmt.Fprintf(a.stdout, "Strategy: %s\n", c.Strategy)
	fmt.Fprintf(a.stdout, "\n")

	if found {
		fmt.Fprint(a.stdout, api.FormatPlan(result))
		fmt.Fprintf(a.stdout, "\nSolved in %s (%d steps, cost %d)\n", duration, result.Len(), result.Cost())
		if opts.verify {
			fmt.Fprintf(a.stdout, "✓ Plan verified\n")
		}
	}

	if opts.stats {
		fmt.Fprintf(a.stdout, "\nSearch statistics:\n")
		fmt.Fprintf(a.stdout, "  Nodes expanded:   %d\n", stats.NodesExpanded)
		fmt.Fprintf(a.stdout, "  Nodes generated:  %d\n", stats.NodesGenerated)
		fmt.Fprintf(a.stdout, "  Nodes reopened:   %d\n", stats.NodesReopened)
		fmt.Fprintf(a.stdout, "  Frontier peak:    %d\n", stats.FrontierPeak)
		fmt.Fprintf(a.stdout, "  Budget exhausted: %v\n", stats.BudgetExhausted)
	}
}

// writeJSON renders the outcome for machines.
func (a *App) writeJSON(c *catalog.Compiled, result *api.Plan, stats api.Stats, found bool, duration time.Duration, opts *solveOptions) error {
	output := map[string]any{
		"scenario": c.Name,
		"strategy": c.Strategy.String(),
		"found":    found,
		"duration": duration.String(),
	}

	if found {
		output["plan"] = result
		output["cost"] = result.Cost()
		output["length"] = result.Len()
		if opts.verify {
			output["verified"] = true
		}
	}

	if opts.stats {
		output["stats"] = map[string]any{
			"nodes_expanded":   stats.NodesExpanded,
			"nodes_generated":  stats.NodesGenerated,
			"nodes_reopened":   stats.NodesReopened,
			"frontier_peak":    stats.FrontierPeak,
			"budget_exhausted": stats.BudgetExhausted,
		}
	}

	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

// watchScenario plans the scenario now and again on every file change.
func (a *App) watchScenario(ctx context.Context, loader *catalog.Loader, scn *catalog.Scenario, opts *solveOptions) error {
	// First pass before any change; a scenario that cannot be planned
	// is reported but keeps the watch alive so edits can fix it.
	if err := a.solveOnce(scn, opts); err != nil {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
	}

	handler := func(reloaded *catalog.Scenario, err error) {
		if err != nil {
			fmt.Fprintf(a.stderr, "Error: reload failed: %v\n", err)
			return
		}
		fmt.Fprintf(a.stdout, "\n--- %s changed, re-planning ---\n\n", opts.scenarioPath)
		if err := a.solveOnce(reloaded, opts); err != nil {
			fmt.Fprintf(a.stderr, "Error: %v\n", err)
		}
	}

	w, err := catalog.NewWatcher(opts.scenarioPath, loader, handler)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	fmt.Fprintf(a.stdout, "\nWatching %s for changes (Ctrl+C to stop)\n", opts.scenarioPath)
	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer w.Stop()

	<-ctx.Done()
	return nil
}

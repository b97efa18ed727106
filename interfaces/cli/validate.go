package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/goap-go/infrastructure/catalog"
)

// validateOptions holds options for the validate command.
type validateOptions struct {
	scenarioPath string
	strict       bool
}

// newValidateCmd creates the validate command.
func (a *App) newValidateCmd() *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a scenario file",
		Long: `Validate a scenario file for correctness.

This command checks:
  - File format (YAML or JSON)
  - Required fields (name, actions with effects)
  - Condition relations and mutation operations
  - Value kinds (increment and decrement amounts must be numeric)
  - Environment variable references (in strict mode)

Examples:
  # Validate a scenario file
  goap validate -f scenario.yaml

  # Strict validation (fail on missing env vars)
  goap validate -f scenario.yaml --strict`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.validateScenario(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.scenarioPath, "file", "f", "", "Path to scenario file")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Enable strict validation (fail on missing env vars)")

	return cmd
}

// validateScenario validates the scenario file.
func (a *App) validateScenario(opts *validateOptions) error {
	if opts.scenarioPath == "" {
		return fmt.Errorf("scenario file path is required (-f flag)")
	}

	// Create loader with appropriate options
	loaderOpts := []catalog.LoaderOption{
		catalog.WithValidation(true),
	}
	if opts.strict {
		loaderOpts = append(loaderOpts, catalog.WithStrictEnv(true))
	}

	loader := catalog.NewLoaderWithOptions(loaderOpts...)
	scn, err := loader.LoadFile(opts.scenarioPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	// Compiling proves every value, condition, and mutation converts
	compiled, err := scn.Compile()
	if err != nil {
		return fmt.Errorf("scenario compile failed: %w", err)
	}

	fmt.Fprintf(a.stdout, "✓ Scenario is valid\n")
	fmt.Fprintf(a.stdout, "  Name: %s\n", scn.Name)
	if scn.Description != "" {
		fmt.Fprintf(a.stdout, "  Description: %s\n", scn.Description)
	}

	// Summary
	fmt.Fprintf(a.stdout, "\nScenario summary:\n")
	fmt.Fprintf(a.stdout, "  Strategy: %s\n", compiled.Strategy)
	fmt.Fprintf(a.stdout, "  Max expansions: %d\n", compiled.MaxExpansions)
	fmt.Fprintf(a.stdout, "  Start keys: %d\n", compiled.Start.Len())
	fmt.Fprintf(a.stdout, "  Goal conditions: %d\n", compiled.Goal.Len())

	fmt.Fprintf(a.stdout, "  Actions: %d\n", len(compiled.Actions))
	for _, act := range compiled.Actions {
		fmt.Fprintf(a.stdout, "    - %s (%d effects)\n", act.Name(), len(act.Effects()))
	}

	return nil
}

package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Bobfrat/RTI/internal/harness"
)

// RunResult holds one scenario execution for output.
type RunResult struct {
	Scenario string               `json:"scenario"`
	Pass     bool                 `json:"pass"`
	RunToken string               `json:"run_token"`
	Trace    []harness.TraceEvent `json:"trace"`
	State    map[string]any       `json:"state"`
	Errors   []string             `json:"errors,omitempty"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Run one configuration scenario",
		Long: `Execute a YAML configuration scenario against a fresh ping-order
store and print the step trace and final state.

Exit codes:
  0 - scenario passed
  1 - a step expectation or assertion failed
  2 - command error (scenario missing or malformed)

Example:
  rti run scenarios/decode_basic.yaml
  rti run scenarios/decode_basic.yaml --format json --verbose`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarioFile(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runScenarioFile(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	logLevel := slog.LevelWarn
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	}))

	scenario, err := harness.LoadScenario(path)
	if err != nil {
		_ = formatter.Error(ErrCodeScenario, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load scenario", err)
	}
	logger.Debug("scenario loaded", "name", scenario.Name, "steps", len(scenario.Steps), "assertions", len(scenario.Assertions))

	result, err := harness.Run(scenario)
	if err != nil {
		_ = formatter.Error(ErrCodeScenario, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to execute scenario", err)
	}
	logger.Debug("scenario executed", "pass", result.Pass, "errors", len(result.Errors))

	out := RunResult{
		Scenario: scenario.Name,
		Pass:     result.Pass,
		RunToken: result.RunToken,
		Trace:    result.Trace,
		State:    result.State,
		Errors:   result.Errors,
	}

	if formatter.Format == "json" {
		if !out.Pass {
			_ = formatter.Error(ErrCodeScenario, fmt.Sprintf("scenario %q failed", out.Scenario), out)
			return NewExitError(ExitFailure, "scenario failed")
		}
		return formatter.Success(out)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "Scenario: %s (%s)\n", out.Scenario, out.RunToken)
	for _, ev := range out.Trace {
		fmt.Fprintf(w, "  [%d] %s %s ok=%v cepo=%q records=%d\n",
			ev.Step, ev.Op, ev.Arg, ev.OK, ev.Cepo, ev.Records)
	}
	fmt.Fprintf(w, "Final CEPO: %v\n", out.State["cepo"])

	if !out.Pass {
		fmt.Fprintf(w, "✗ %s\n", out.Scenario)
		for _, msg := range out.Errors {
			fmt.Fprintf(w, "  %s\n", msg)
		}
		return NewExitError(ExitFailure, "scenario failed")
	}

	fmt.Fprintf(w, "✓ %s\n", out.Scenario)
	return nil
}

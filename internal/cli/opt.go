package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"localopts/internal/ir"
)

// NewOptCommand creates the opt command.
func NewOptCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		passes []string
		output string
		stats  bool
	)

	cmd := &cobra.Command{
		Use:   "opt <file.ll>",
		Short: "Run optimization passes over an IR file",
		Long: `Parse an IR file, run the configured passes over every defined function
and print the resulting IR.

Passes are taken from --pass flags, then LOCALOPTS_PASSES, then the
configuration file, and default to the three rewriting passes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := rootOpts.Config.Passes
			if len(passes) > 0 {
				names = passes
			}
			return runOpt(cmd, args[0], names, output, stats)
		},
	}

	cmd.Flags().StringArrayVarP(&passes, "pass", "p", nil, "pass to run, in order (repeatable)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the optimized IR to a file instead of stdout")
	cmd.Flags().BoolVar(&stats, "stats", false, "print per-pass results to stderr")

	return cmd
}

func runOpt(cmd *cobra.Command, path string, passes []string, output string, stats bool) error {
	startTime := time.Now()

	m, err := loadModule(path, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	pipeline, err := ir.NewPipeline(ir.NewRegistry(cmd.OutOrStdout()), passes...)
	if err != nil {
		return err
	}
	report := pipeline.Run(m)

	text := ir.PrintModule(m)
	if output == "" {
		fmt.Fprint(cmd.OutOrStdout(), text)
	} else if err := os.WriteFile(output, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if stats {
		printReport(cmd.ErrOrStderr(), report)
		green := color.New(color.FgGreen).SprintfFunc()
		fmt.Fprintln(cmd.ErrOrStderr(), green("Optimized %s in %s", path, formatDuration(time.Since(startTime))))
	}
	return nil
}

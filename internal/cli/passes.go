package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"localopts/internal/ir"
)

// NewPassesCommand creates the passes command.
func NewPassesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "passes",
		Short: "List the registered passes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := ir.NewRegistry(cmd.OutOrStdout())
			name := color.New(color.FgCyan, color.Bold).SprintfFunc()
			enabled := make(map[string]bool)
			for _, p := range rootOpts.Config.Passes {
				enabled[p] = true
			}

			for _, n := range reg.SortedNames() {
				pass, err := reg.Lookup(n)
				if err != nil {
					return err
				}
				kind := "function"
				if _, ok := pass.(ir.ModulePass); ok {
					kind = "module"
				}
				flags := ""
				if pass.PreservesAnalyses() {
					flags = " [preserves analyses]"
				}
				if enabled[n] {
					flags += " [enabled]"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s pass: %s%s\n", name("%-20s", n), kind, pass.Description(), flags)
			}
			return nil
		},
	}
}

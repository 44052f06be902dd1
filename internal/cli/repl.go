package cli

import (
	"github.com/spf13/cobra"

	"localopts/repl"
)

// NewReplCommand creates the repl command.
func NewReplCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Optimize functions typed on standard input",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			repl.Start(cmd.InOrStdin(), cmd.OutOrStdout(), rootOpts.Config.Passes)
		},
	}
}

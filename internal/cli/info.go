package cli

import (
	"github.com/spf13/cobra"

	"localopts/internal/ir"
)

// NewInfoCommand creates the info command.
func NewInfoCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info <file.ll>",
		Short: "Print argument, block, instruction and call counts per function",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadModule(args[0], cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			pipeline, err := ir.NewPipeline(ir.NewRegistry(cmd.OutOrStdout()), ir.FunctionInfoName)
			if err != nil {
				return err
			}
			pipeline.Run(m)
			return nil
		},
	}
}

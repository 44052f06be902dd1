package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"localopts/internal/config"
)

var log = commonlog.GetLogger("localopts.cli")

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    int
	ConfigPath string
	NoColor    bool

	// Config is resolved before any subcommand runs
	Config *config.Config
}

// NewRootCommand creates the root command for the localopt CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "localopt",
		Short: "localopt - local peephole optimizer for textual IR",
		Long: `Run local rewrite passes (algebraic identities, strength reduction and
constant folding) over functions written in a small LLVM-like IR.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve()
		},
	}

	// Global flags
	cmd.PersistentFlags().CountVarP(&opts.Verbose, "verbose", "v", "increase log verbosity (repeatable)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "YAML configuration file")
	cmd.PersistentFlags().BoolVar(&opts.NoColor, "no-color", false, "disable coloured output")

	// Add subcommands
	cmd.AddCommand(NewOptCommand(opts))
	cmd.AddCommand(NewInfoCommand(opts))
	cmd.AddCommand(NewPassesCommand(opts))
	cmd.AddCommand(NewReplCommand(opts))

	return cmd
}

// resolve loads the configuration and applies flags over it, then sets up
// colour and logging.
func (o *RootOptions) resolve() error {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return err
	}
	if o.Verbose > 0 {
		cfg.Verbosity = o.Verbose
	}
	if o.NoColor {
		cfg.Color = false
	}
	o.Config = cfg

	color.NoColor = !cfg.Color
	var path *string
	if cfg.LogFile != "" {
		path = &cfg.LogFile
	}
	commonlog.Configure(cfg.Verbosity, path)
	log.Debugf("passes: %v", cfg.Passes)
	return nil
}

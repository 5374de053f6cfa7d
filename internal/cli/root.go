package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// logger is the package-level logger for CLI operations.
var logger = zerolog.Nop() //nolint:gochecknoglobals // set once per command in PersistentPreRunE

// NewRootCmd creates the root Cobra command for the carbonsim CLI.
func NewRootCmd(ver string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "carbonsim",
		Short:         "Facility carbon reduction simulation",
		Long:          "carbonsim: plan, fund and play out energy projects that cut a facility's carbon emissions",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupLogging(cmd)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("log-level", "", "log level (trace, debug, info, warn, error)")
	cmd.PersistentFlags().String("log-format", "console", "log format (console or json)")
	cmd.AddCommand(newInitCmd(), newProjectsCmd(), newPlayCmd())

	return cmd
}

const rootCmdExample = `  # Write example settings, catalog and plan files
  carbonsim init --dir ./game

  # List the projects open in the first period
  carbonsim projects --settings game/settings.yaml --catalog game/catalog.yaml

  # Play a scripted plan and print the report as JSON
  carbonsim play --settings game/settings.yaml --catalog game/catalog.yaml --plan game/plan.yaml --format json`

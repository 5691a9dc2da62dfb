package cli

import (
	"github.com/spf13/cobra"

	"github.com/daily-planner/plannerd/internal/bootstrap"
)

// newRestoreCommand creates the "restore" subcommand: materialize secrets and
// exit, for init-container use where a different process starts the planner.
func newRestoreCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "restore",
		Short: "Restore secrets from the environment without executing anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := LoggerFromContext(cmd.Context())

			return bootstrap.New(opts.Settings, logger).Materialize()
		},
	}
}

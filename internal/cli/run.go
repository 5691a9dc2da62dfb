package cli

import (
	"github.com/spf13/cobra"

	"github.com/daily-planner/plannerd/internal/bootstrap"
)

// newRunCommand creates the "run" subcommand, the container entrypoint mode:
// restore secrets, then replace this process with the wrapped command.
func newRunCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run -- <command> [args...]",
		Short: "Restore secrets and exec the wrapped application command",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := LoggerFromContext(cmd.Context())

			// Only returns on error: on success the process image is replaced.
			return bootstrap.New(opts.Settings, logger).Run(args)
		},
	}

	// Flags after the first positional arg belong to the wrapped command.
	cmd.Flags().SetInterspersed(false)

	return cmd
}

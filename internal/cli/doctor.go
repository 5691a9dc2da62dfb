package cli

import (
	"github.com/spf13/cobra"
)

// newDoctorCommand creates the "doctor" subcommand that runs environment preflight checks.
func newDoctorCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Run environment preflight checks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := LoggerFromContext(cmd.Context())

			if err := runDoctorChecks(logger, opts.Settings); err != nil {
				return err
			}

			logger.Info("doctor checks completed successfully")
			return nil
		},
	}
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daily-planner/plannerd/internal/rmapi"
)

// newRegisterCommand creates the "register" subcommand that runs rmapi's
// one-time interactive device pairing.
func newRegisterCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Run one-time reMarkable device registration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := LoggerFromContext(cmd.Context())

			configPath, err := opts.Settings.ResolvedConfigPath()
			if err != nil {
				return err
			}

			fmt.Println("Starting rmapi device registration.")
			fmt.Println("If no device is paired yet you will be asked for a one-time code from:")
			fmt.Println("  https://my.remarkable.com/device/browser/connect")
			fmt.Println()

			client := rmapi.NewClient(opts.Settings.RmapiBin, configPath, logger)
			if err := client.Register(cmd.Context()); err != nil {
				return err
			}

			logger.Info("registration complete", "config", configPath)
			return nil
		},
	}
}

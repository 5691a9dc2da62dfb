package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/daily-planner/plannerd/internal/rmapi"
)

// newUploadCommand creates the "upload" subcommand that pushes a generated
// planner PDF to reMarkable Cloud.
func newUploadCommand(opts *Options) *cobra.Command {
	var (
		folder string
		name   string
	)

	cmd := &cobra.Command{
		Use:   "upload <pdf>",
		Short: "Upload a planner PDF to reMarkable Cloud",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := LoggerFromContext(cmd.Context())

			if folder == "" {
				folder = opts.Settings.Folder
			}

			configPath, err := opts.Settings.ResolvedConfigPath()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			client := rmapi.NewClient(opts.Settings.RmapiBin, configPath, logger)
			return client.Upload(ctx, args[0], folder, name)
		},
	}

	cmd.Flags().StringVar(&folder, "folder", "", "reMarkable folder to upload into (default from PLANNERD_FOLDER)")
	cmd.Flags().StringVar(&name, "name", "", "Document name on the device (default: the PDF filename)")

	return cmd
}

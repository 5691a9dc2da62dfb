// Package cli defines the command-line interface for plannerd.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/daily-planner/plannerd/internal/config"
	"github.com/daily-planner/plannerd/internal/logging"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// Options stores global CLI options shared between commands.
type Options struct {
	// Settings is loaded once in the root PersistentPreRunE and reused by
	// every subcommand.
	Settings *config.Settings
	LogLevel logging.Level
}

// Execute builds the root command, runs it with the provided args and logger, and returns any error.
func Execute(args []string, logger *slog.Logger) error {
	if logger == nil {
		logger = logging.NewLogger(os.Stderr, logging.LevelInfo)
	}

	rootOpts := &Options{
		LogLevel: logging.LevelInfo,
	}

	rootCmd := newRootCommand(rootOpts, logger)
	rootCmd.SetArgs(args)

	return rootCmd.Execute()
}

// newRootCommand constructs the root cobra.Command with global flags and subcommands.
func newRootCommand(opts *Options, logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plannerd",
		Short: "plannerd is the container entry tool for the daily planner",
		Long: "plannerd restores rmapi credentials from the environment before the planner " +
			"starts, and wraps the rmapi binary for uploads, registration and preflight checks.",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := config.Load()
			if err != nil {
				return err
			}
			opts.Settings = settings

			levelFlag := cmd.Flag("log-level")
			levelValue := levelFlag.Value.String()
			if !levelFlag.Changed && settings.LogLevel != "" {
				levelValue = settings.LogLevel
			}
			level, err := logging.ParseLevel(levelValue)
			if err != nil {
				return err
			}
			opts.LogLevel = level
			logger = logging.NewLogger(os.Stderr, level)
			cmd.SetContext(context.WithValue(cmd.Context(), loggerKey{}, logger))
			logger.Debug("logger initialized", "level", level)
			return nil
		},
	}

	cmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newRunCommand(opts),
		newRestoreCommand(opts),
		newUploadCommand(opts),
		newRegisterCommand(opts),
		newDoctorCommand(opts),
		newVersionCommand(),
	)

	return cmd
}

// loggerKey is a private context key used to store a logger in command contexts.
type loggerKey struct{}

// LoggerFromContext extracts a logger from the context or falls back to a default logger.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return logging.NewLogger(os.Stderr, logging.LevelInfo)
	}
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return logging.NewLogger(os.Stderr, logging.LevelInfo)
}

// Package bootstrap restores configuration secrets from the process
// environment to the filesystem and hands control to the wrapped application.
package bootstrap

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/daily-planner/plannerd/internal/config"
)

// Bootstrapper materializes env-sourced secrets before the application starts.
// It is a one-shot: a container runs it exactly once, and every failure is
// fatal before the application command is reached.
type Bootstrapper struct {
	settings *config.Settings
	logger   *slog.Logger
}

// New constructs a Bootstrapper for the given settings and logger.
func New(settings *config.Settings, logger *slog.Logger) *Bootstrapper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bootstrapper{settings: settings, logger: logger}
}

// Materialize writes the credentials blob and any extra manifest files to
// disk. A missing or empty blob is not an error: nothing is written. Every
// file lands via a temp-file rename in its target directory, so a reader
// never observes a partially written file.
func (b *Bootstrapper) Materialize() error {
	if b.settings.ConfigData == "" {
		b.logger.Debug("no credentials blob in environment, skipping restore")
	} else {
		path, err := b.settings.ResolvedConfigPath()
		if err != nil {
			return err
		}
		data, err := decodeValue(b.settings.ConfigData)
		if err != nil {
			return fmt.Errorf("decode credentials blob: %w", err)
		}
		if err := writeFileAtomic(path, data); err != nil {
			return fmt.Errorf("restore credentials file: %w", err)
		}
		b.logger.Info("credentials file restored", "path", path, "bytes", len(data))
	}

	extras, err := ParseManifest(b.settings.ExtraFiles)
	if err != nil {
		return fmt.Errorf("parse extra files manifest: %w", err)
	}
	for _, entry := range extras {
		data, err := decodeValue(entry.Content)
		if err != nil {
			return fmt.Errorf("decode content for %s: %w", entry.Path, err)
		}
		if err := writeFileAtomic(entry.Path, data); err != nil {
			return fmt.Errorf("write extra file: %w", err)
		}
		b.logger.Info("extra file written", "path", entry.Path, "bytes", len(data))
	}

	return nil
}

// Run materializes all secrets and then replaces the current process with the
// given command. It only returns on error.
func (b *Bootstrapper) Run(argv []string) error {
	if len(argv) == 0 {
		return fmt.Errorf("no command to execute")
	}
	if err := b.Materialize(); err != nil {
		return err
	}
	b.logger.Debug("handing off to application", "command", argv[0])
	return Exec(argv, os.Environ())
}

// decodeValue returns the literal bytes of val, or its decoded form when the
// value carries a "base64:" prefix.
func decodeValue(val string) ([]byte, error) {
	if !strings.HasPrefix(val, "base64:") {
		return []byte(val), nil
	}
	return base64.StdEncoding.DecodeString(strings.TrimPrefix(val, "base64:"))
}

// writeFileAtomic writes data to path with mode 0600, creating missing
// ancestor directories with mode 0700. The write goes to a temp file in the
// target directory that is renamed into place.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", tmpName, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename into %s: %w", path, err)
	}
	return nil
}

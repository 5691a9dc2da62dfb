// Package config contains the environment-driven settings model for plannerd.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	envparse "github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	// DefaultFolder is the reMarkable folder planner documents are uploaded to.
	DefaultFolder = "Daily Planner"
	// DefaultRmapiBin is the name of the sync binary looked up in PATH.
	DefaultRmapiBin = "rmapi"
)

// Settings holds all plannerd configuration sourced from the process environment.
type Settings struct {
	// ConfigData is the full text of the rmapi credentials file to restore,
	// from RMAPI_CONFIG_DATA. Optional "base64:" prefix marks encoded content.
	ConfigData string `env:"RMAPI_CONFIG_DATA"`
	// ConfigPath overrides where the credentials file is written, from
	// RMAPI_CONFIG. rmapi itself honors the same variable when reading.
	ConfigPath string `env:"RMAPI_CONFIG"`
	// ExtraFiles is an optional YAML map of path to content for additional
	// files to materialize, from PLANNERD_FILES.
	ExtraFiles string `env:"PLANNERD_FILES"`
	// Folder is the reMarkable folder for uploads, from PLANNERD_FOLDER.
	Folder string `env:"PLANNERD_FOLDER"`
	// RmapiBin is the sync binary name or path, from PLANNERD_RMAPI_BIN.
	RmapiBin string `env:"PLANNERD_RMAPI_BIN"`
	// LogLevel is the logging level from PLANNERD_LOG_LEVEL.
	LogLevel string `env:"PLANNERD_LOG_LEVEL"`
}

// Load reads an optional .env file, parses PLANNERD_*/RMAPI_* variables and
// applies defaults. The credentials blob is treated as opaque and never
// validated here.
func Load() (*Settings, error) {
	_ = godotenv.Load()

	s := &Settings{}
	if err := envparse.Parse(s); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if s.Folder == "" {
		s.Folder = DefaultFolder
	}
	if s.RmapiBin == "" {
		s.RmapiBin = DefaultRmapiBin
	}

	return s, nil
}

// ResolvedConfigPath returns the path the credentials file is written to and
// read from: the RMAPI_CONFIG override when set, otherwise the fixed default
// under the invoking user's home directory.
func (s *Settings) ResolvedConfigPath() (string, error) {
	if s.ConfigPath != "" {
		return s.ConfigPath, nil
	}
	return DefaultConfigPath()
}

// DefaultConfigPath returns the default rmapi credentials location,
// $HOME/.config/rmapi/rmapi.conf.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "rmapi", "rmapi.conf"), nil
}

package cli

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/daily-planner/plannerd/internal/config"
)

func runDoctorChecks(logger *slog.Logger, settings *config.Settings) error {
	if logger == nil {
		logger = slog.Default()
	}

	var failures []string

	if _, err := exec.LookPath(settings.RmapiBin); err != nil {
		logger.Error("doctor check failed: sync binary not found in PATH", "bin", settings.RmapiBin, "error", err)
		failures = append(failures, "rmapi binary missing")
	} else {
		logger.Info("doctor check ok: sync binary found", "bin", settings.RmapiBin)
	}

	configPath, err := settings.ResolvedConfigPath()
	if err != nil {
		return err
	}

	switch _, err := os.Stat(configPath); {
	case err == nil:
		logger.Info("doctor check ok: credentials file present", "path", configPath)
		checkCredentialsFile(logger, configPath)
	case os.IsNotExist(err):
		logger.Error("doctor check failed: credentials file missing", "path", configPath,
			"hint", "set RMAPI_CONFIG_DATA or run 'plannerd register'")
		failures = append(failures, "credentials file missing")
	default:
		logger.Error("doctor check failed: credentials file unreadable", "path", configPath, "error", err)
		failures = append(failures, "credentials file unreadable")
	}

	if err := checkDirWritable(filepath.Dir(configPath)); err != nil {
		logger.Error("doctor check failed: credentials directory not writable", "dir", filepath.Dir(configPath), "error", err)
		failures = append(failures, "credentials directory not writable")
	} else {
		logger.Info("doctor check ok: credentials directory writable", "dir", filepath.Dir(configPath))
	}

	if len(failures) > 0 {
		return fmt.Errorf("doctor checks failed: %s", strings.Join(failures, ", "))
	}
	return nil
}

// checkCredentialsFile probes the stored rmapi credentials for a device
// token. A malformed or tokenless file only warns: the file's schema belongs
// to the sync binary, not to plannerd.
func checkCredentialsFile(logger *slog.Logger, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("credentials file could not be read", "path", path, "error", err)
		return
	}

	tokens := make(map[string]string)
	if err := yaml.Unmarshal(data, &tokens); err != nil {
		logger.Warn("credentials file is not valid YAML", "path", path, "error", err)
		return
	}

	if tokens["devicetoken"] == "" {
		logger.Warn("credentials file has no device token", "path", path,
			"hint", "run 'plannerd register'")
		return
	}
	logger.Info("doctor check ok: device token present", "path", path)
}

// checkDirWritable verifies a file can be created in dir. A missing directory
// is fine: the bootstrapper creates it on demand.
func checkDirWritable(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}
	probe, err := os.CreateTemp(dir, ".plannerd-doctor-*")
	if err != nil {
		return err
	}
	name := probe.Name()
	_ = probe.Close()
	return os.Remove(name)
}

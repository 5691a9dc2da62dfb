package cli

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/daily-planner/plannerd/internal/logging"
)

func runRoot(t *testing.T, args ...string) (*Options, error) {
	t.Helper()
	opts := &Options{LogLevel: logging.LevelInfo}
	cmd := newRootCommand(opts, testLogger())
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	return opts, cmd.Execute()
}

func TestRootLevelFromEnvironment(t *testing.T) {
	t.Setenv("PLANNERD_LOG_LEVEL", "debug")

	opts, err := runRoot(t, "version")
	assert.NoError(t, err)
	assert.Equal(t, logging.LevelDebug, opts.LogLevel)
	assert.NotNil(t, opts.Settings, "settings must be loaded by the root pre-run")
	assert.Equal(t, "debug", opts.Settings.LogLevel)
}

func TestRootRejectsUnknownEnvLevel(t *testing.T) {
	t.Setenv("PLANNERD_LOG_LEVEL", "verbose")

	_, err := runRoot(t, "version")
	assert.ErrorContains(t, err, "unknown log level")
}

func TestRootFlagBeatsEnvLevel(t *testing.T) {
	t.Setenv("PLANNERD_LOG_LEVEL", "verbose")

	opts, err := runRoot(t, "version", "--log-level", "warn")
	assert.NoError(t, err, "an explicit flag must win over the broken env value")
	assert.Equal(t, logging.LevelWarn, opts.LogLevel)
}

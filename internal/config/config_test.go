package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"RMAPI_CONFIG_DATA", "RMAPI_CONFIG", "PLANNERD_FILES",
		"PLANNERD_FOLDER", "PLANNERD_RMAPI_BIN", "PLANNERD_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	s, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, DefaultFolder, s.Folder)
	assert.Equal(t, DefaultRmapiBin, s.RmapiBin)
	assert.Empty(t, s.ConfigData)
	assert.Empty(t, s.ConfigPath)
	assert.Empty(t, s.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("RMAPI_CONFIG_DATA", "devicetoken: d\n")
	t.Setenv("RMAPI_CONFIG", "/secrets/rmapi.conf")
	t.Setenv("PLANNERD_FOLDER", "Inbox")
	t.Setenv("PLANNERD_RMAPI_BIN", "/opt/rmapi/rmapi")
	t.Setenv("PLANNERD_LOG_LEVEL", "debug")

	s, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "devicetoken: d\n", s.ConfigData)
	assert.Equal(t, "/secrets/rmapi.conf", s.ConfigPath)
	assert.Equal(t, "Inbox", s.Folder)
	assert.Equal(t, "/opt/rmapi/rmapi", s.RmapiBin)
	assert.Equal(t, "debug", s.LogLevel)
}

func TestResolvedConfigPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	s := &Settings{}
	got, err := s.ResolvedConfigPath()
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "rmapi", "rmapi.conf"), got)

	s.ConfigPath = "/secrets/rmapi.conf"
	got, err = s.ResolvedConfigPath()
	assert.NoError(t, err)
	assert.Equal(t, "/secrets/rmapi.conf", got)
}

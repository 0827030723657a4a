package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8080", cfg.Listen)
	assert.Equal(t, 5, cfg.ReminderWindowMinutes)
	assert.Equal(t, "gemini-2.5-flash", cfg.Planner.Model)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoadExistingConfig(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"listen: \"0.0.0.0:9090\"\ntimezone: \"Europe/Berlin\"\nplanner:\n  api_key: \"k123\"\n",
	), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9090", cfg.Listen)
	assert.Equal(t, "Europe/Berlin", cfg.Timezone)
	assert.Equal(t, "k123", cfg.Planner.APIKey)
	// Missing fields pick up defaults.
	assert.Equal(t, "./data", cfg.DataDir)
	assert.Equal(t, 5, cfg.ReminderWindowMinutes)
}

func TestEnvOverridesAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")

	cfg := DefaultConfig()
	cfg.Planner.APIKey = "file-key"
	cfg.Normalize()

	assert.Equal(t, "env-key", cfg.Planner.APIKey)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Listen = "127.0.0.1:7070"
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:7070", loaded.Listen)
}

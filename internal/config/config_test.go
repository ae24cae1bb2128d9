package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 4, cfg.Editor.TabWidth)
	assert.Equal(t, "yaj> ", cfg.Editor.Prompt)
	assert.Equal(t, 0, cfg.Run.TimeoutSeconds)
	assert.Equal(t, 1000000, cfg.Run.MaxSteps)
	assert.True(t, cfg.Output.Color)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), FileName)
	content := `editor:
  tab_width: 2
  start_dir: /tmp/scripts
run:
  timeout_seconds: 5
output:
  color: false
log:
  level: debug
  json: true
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Editor.TabWidth)
	assert.Equal(t, "/tmp/scripts", cfg.StartDir())
	assert.Equal(t, 5*time.Second, cfg.RunTimeout())
	assert.False(t, cfg.Output.Color)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)

	// keys absent from the file keep their defaults
	assert.Equal(t, "yaj> ", cfg.Editor.Prompt)
	assert.Equal(t, 1000000, cfg.Run.MaxSteps)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("editor: [1, 2"), 0644))
	_, err = Load(bad)
	assert.ErrorContains(t, err, "failed to parse config file")

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("editor:\n  tab_width: 0\n"), 0644))
	_, err = Load(invalid)
	assert.ErrorContains(t, err, "editor.tab_width must be between 1 and 16")
}

func TestLoadOrDefault(t *testing.T) {
	dir := t.TempDir()

	cfg := LoadOrDefault(filepath.Join(dir, "missing.yaml"))
	assert.Equal(t, Default(), cfg)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("run:\n  max_steps: -1\n"), 0644))
	assert.Equal(t, Default(), LoadOrDefault(invalid))
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	cfg := Default()
	cfg.Editor.TabWidth = 8
	cfg.Log.Level = "error"
	require.NoError(t, cfg.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"tab width too small", func(c *Config) { c.Editor.TabWidth = 0 }, "editor.tab_width must be between 1 and 16"},
		{"tab width too large", func(c *Config) { c.Editor.TabWidth = 17 }, "editor.tab_width must be between 1 and 16"},
		{"negative timeout", func(c *Config) { c.Run.TimeoutSeconds = -1 }, "run.timeout_seconds must not be negative"},
		{"negative steps", func(c *Config) { c.Run.MaxSteps = -5 }, "run.max_steps must not be negative"},
		{"unknown level", func(c *Config) { c.Log.Level = "loud" }, `unknown log level "loud"`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestHistoryPath(t *testing.T) {
	cfg := Default()
	cfg.Editor.HistoryFile = "/tmp/h"
	assert.Equal(t, "/tmp/h", cfg.HistoryPath())
}

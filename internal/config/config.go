package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"yaj-editor/internal/logger"
)

// FileName is the config file looked up in the working directory.
const FileName = "yaj.yaml"

// Config represents the editor configuration
type Config struct {
	Editor EditorConfig `yaml:"editor"`
	Run    RunConfig    `yaml:"run"`
	Output OutputConfig `yaml:"output"`
	Log    LogConfig    `yaml:"log"`
}

// EditorConfig contains settings of the editing session
type EditorConfig struct {
	TabWidth    int    `yaml:"tab_width"`
	Prompt      string `yaml:"prompt"`
	HistoryFile string `yaml:"history_file,omitempty"` // defaults to ~/.yaj_history
	StartDir    string `yaml:"start_dir,omitempty"`    // defaults to the user's home
}

// RunConfig bounds a single program run
type RunConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds"`
	MaxSteps       int `yaml:"max_steps"`
}

type OutputConfig struct {
	Color bool `yaml:"color"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			TabWidth: 4,
			Prompt:   "yaj> ",
		},
		Run: RunConfig{
			TimeoutSeconds: 0,
			MaxSteps:       1000000,
		},
		Output: OutputConfig{
			Color: true,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Load reads and parses a config file. Keys missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// LoadOrDefault loads path, or yaj.yaml in the working directory when path is
// empty. A missing file yields the defaults silently; an unreadable or invalid
// one is logged and also falls back to the defaults.
func LoadOrDefault(path string) *Config {
	if path == "" {
		path = filepath.Join(".", FileName)
	}
	cfg, err := Load(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn("using default config: %v", err)
		}
		return Default()
	}
	return cfg
}

// Save writes the config to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Editor.TabWidth < 1 || c.Editor.TabWidth > 16 {
		return fmt.Errorf("editor.tab_width must be between 1 and 16")
	}

	if c.Run.TimeoutSeconds < 0 {
		return fmt.Errorf("run.timeout_seconds must not be negative")
	}

	if c.Run.MaxSteps < 0 {
		return fmt.Errorf("run.max_steps must not be negative")
	}

	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}

	return nil
}

// RunTimeout is the run deadline, or 0 when runs are unbounded.
func (c *Config) RunTimeout() time.Duration {
	return time.Duration(c.Run.TimeoutSeconds) * time.Second
}

// HistoryPath resolves the shell history file.
func (c *Config) HistoryPath() string {
	if c.Editor.HistoryFile != "" {
		return c.Editor.HistoryFile
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".yaj_history")
}

// StartDir is where the open-file prompt starts.
func (c *Config) StartDir() string {
	if c.Editor.StartDir != "" {
		return c.Editor.StartDir
	}
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

// ApplyLogging configures the default logger from the log section.
func (c *Config) ApplyLogging() {
	if lvl, err := logger.ParseLevel(c.Log.Level); err == nil {
		logger.SetDefaultLevel(lvl)
	}
	logger.SetDefaultJSON(c.Log.JSON)
}

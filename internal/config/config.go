// Package config provides the YAML-backed application configuration.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// PlannerConfig configures the AI planner integration.
type PlannerConfig struct {
	// APIKey authenticates against the Gemini API. The GEMINI_API_KEY
	// environment variable overrides this value.
	APIKey string `yaml:"api_key" json:"-"`

	// Model is the generateContent model name.
	Model string `yaml:"model" json:"model"`

	// BaseURL overrides the API endpoint prefix. Empty means the public
	// endpoint.
	BaseURL string `yaml:"base_url,omitempty" json:"base_url,omitempty"`
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address for the API.
	Listen string `yaml:"listen" json:"listen"`

	// DataDir holds the SQLite database.
	DataDir string `yaml:"data_dir" json:"data_dir"`

	// Timezone is the IANA timezone used for reminders and calendar export
	// (e.g. "Europe/Berlin").
	Timezone string `yaml:"timezone" json:"timezone"`

	// ReminderWindowMinutes is the default reminder lead time. A stored
	// setting overrides it at runtime.
	ReminderWindowMinutes int `yaml:"reminder_window_minutes" json:"reminder_window_minutes"`

	// Planner configures the AI planner.
	Planner PlannerConfig `yaml:"planner" json:"planner"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:                "127.0.0.1:8080",
		DataDir:               "./data",
		Timezone:              "Local",
		ReminderWindowMinutes: 5,
		Planner: PlannerConfig{
			Model: "gemini-2.5-flash",
		},
	}
}

// Normalize fills in missing/zero values with defaults so partially-filled
// configs still behave correctly.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = "127.0.0.1:8080"
	}
	if c.DataDir == "" {
		c.DataDir = "./data"
	}
	if c.Timezone == "" {
		c.Timezone = "Local"
	}
	if c.ReminderWindowMinutes <= 0 {
		c.ReminderWindowMinutes = 5
	}
	if c.Planner.Model == "" {
		c.Planner.Model = "gemini-2.5-flash"
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.Planner.APIKey = key
	}
}

// Load loads configuration from the given YAML path. A missing file is
// created with defaults and 0600 permissions.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			cfg.Normalize()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the configuration atomically (temp file + rename) with 0600
// permissions; the API key lives in this file.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".lifesync-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

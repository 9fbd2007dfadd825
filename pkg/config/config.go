// Package config handles loading and saving mediadeck configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config: ~/.config/mediadeck/config.yaml
//   - State:  ~/.local/state/mediadeck/ (analytics log, catalog cache)
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// UIConfig holds UI preference settings.
type UIConfig struct {
	DefaultTab string `yaml:"default_tab,omitempty"` // Tab ID selected on startup
	Accent     string `yaml:"accent,omitempty"`      // Theme accent color (hex)
}

// RestrictionsConfig controls driving-distraction content limiting.
type RestrictionsConfig struct {
	Driving  bool `yaml:"driving,omitempty"`   // Start in driving mode
	MaxItems int  `yaml:"max_items,omitempty"` // Listing cap while driving
}

// AnalyticsConfig controls the browse-event log.
type AnalyticsConfig struct {
	Enabled bool   `yaml:"enabled,omitempty"`
	Path    string `yaml:"path,omitempty"` // Defaults to state dir events.jsonl
}

// Config is the top-level configuration for mediadeck.
type Config struct {
	Library      string             `yaml:"library,omitempty"` // Path to the catalog database
	UI           UIConfig           `yaml:"ui,omitempty"`
	Restrictions RestrictionsConfig `yaml:"restrictions,omitempty"`
	Analytics    AnalyticsConfig    `yaml:"analytics,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Restrictions: RestrictionsConfig{
			MaxItems: 32,
		},
	}
}

// ConfigDir returns the XDG config directory for mediadeck.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "mediadeck")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "mediadeck")
}

// StateDir returns the XDG state directory for mediadeck.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "mediadeck")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "mediadeck")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path. A missing file is not an
// error; defaults are returned.
func LoadFrom(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return DefaultConfig(), fmt.Errorf("reading config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Restrictions.MaxItems <= 0 {
		cfg.Restrictions.MaxItems = DefaultConfig().Restrictions.MaxItems
	}
	return cfg, nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes config to a specific path, creating parent directories.
func SaveTo(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

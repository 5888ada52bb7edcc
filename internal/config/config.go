// Package config provides configuration for envsync from a YAML file,
// environment variables, and sensible defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/klauern/envsync/internal/logging"
	"github.com/klauern/envsync/internal/util"
)

// Config represents the complete envsync configuration.
type Config struct {
	// Store configures the persistence backend
	Store StoreConfig `yaml:"store"`

	// Output configures display and serialization preferences
	Output OutputConfig `yaml:"output"`
}

// StoreConfig holds backend settings.
type StoreConfig struct {
	// ProfilePath overrides the resolved shell profile file.
	// Supports ~ for the home directory. Ignored on Windows.
	ProfilePath string `yaml:"profile_path,omitempty"`
	// DefaultScope is the scope used when --scope is not given (user, system)
	DefaultScope string `yaml:"default_scope"`
}

// OutputConfig holds display and serialization preferences.
type OutputConfig struct {
	// Format is the default serialization format (json, yaml, toml)
	Format string `yaml:"format"`
	// Color controls color output (auto, always, never)
	Color string `yaml:"color"`
}

// Default returns the built-in configuration defaults.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			DefaultScope: "user",
		},
		Output: OutputConfig{
			Format: "json",
			Color:  "auto",
		},
	}
}

// Path returns the config file location. ENVSYNC_CONFIG overrides the
// default of ~/.config/envsync/config.yaml.
func Path() string {
	if p := os.Getenv("ENVSYNC_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(util.HomeDir(), ".config", "envsync", "config.yaml")
}

// Load reads the config file at path, falling back to defaults when the
// file does not exist. Environment variables override file values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		logging.Debug("no config file, using defaults", logging.Path(path))
	case err != nil:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
		logging.Debug("config loaded", logging.Path(path))
	}

	applyEnvOverrides(cfg)
	cfg.Store.ProfilePath = util.ExpandHome(cfg.Store.ProfilePath)
	return cfg, nil
}

// applyEnvOverrides applies ENVSYNC_* environment variable overrides.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ENVSYNC_PROFILE"); v != "" {
		cfg.Store.ProfilePath = v
	}
	if v := os.Getenv("ENVSYNC_SCOPE"); v != "" {
		cfg.Store.DefaultScope = v
	}
	if v := os.Getenv("ENVSYNC_FORMAT"); v != "" {
		cfg.Output.Format = v
	}
}

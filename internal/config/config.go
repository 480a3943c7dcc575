// Package config handles the global colophon configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the optional global configuration stored in
// ~/.config/colophon/config.yml. Every field has a working default; the
// file only needs to exist to override one.
type Config struct {
	BaseURL      string `yaml:"base_url,omitempty"`      // snapshot listing URL
	SnapshotPath string `yaml:"snapshot_path,omitempty"` // local snapshot location
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "colophon"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"

	// DefaultSnapshotPath is where download stores the archive and filter
	// looks for it.
	DefaultSnapshotPath = "data/unpaywall_snapshot.jsonl.gz"
)

// Path returns the global config file path, respecting XDG_CONFIG_HOME.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// Load reads the global config, filling defaults for anything unset.
// A missing file is not an error.
func Load() (*Config, error) {
	return loadFrom(Path())
}

func loadFrom(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config: %w", err)
			}
		}
	}

	if cfg.SnapshotPath == "" {
		cfg.SnapshotPath = DefaultSnapshotPath
	}
	return cfg, nil
}

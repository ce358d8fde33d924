// Package config loads the optional chat CLI configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the chat configuration. Every field is optional; flags
// override config values, which override built-in defaults.
type Config struct {
	// ChatDB overrides the chat.db location (mostly for testing
	// against a copied database).
	ChatDB string `yaml:"chat_db"`
	// DefaultLimit overrides the default message listing limit.
	DefaultLimit int `yaml:"default_limit"`
	// Service is the preferred send service (iMessage or SMS).
	Service string `yaml:"service"`
	// NoResolve skips Contacts.app name resolution everywhere.
	NoResolve bool `yaml:"no_resolve"`
}

// GetConfigDir returns the XDG-compliant config directory.
func GetConfigDir() (string, error) {
	// Explicit override (useful for tests and portable installs)
	if override := os.Getenv("CHAT_CONFIG_DIR"); override != "" {
		return override, nil
	}

	var base string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		base = xdg
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "chat"), nil
}

// Load loads config from the config file. A missing file yields the
// zero config, not an error.
func Load() (*Config, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(configDir, "config.yaml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// Package config loads the optional user configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the user-tunable defaults. The TUI can override the
// work duration and volume at runtime; those overrides persist in the
// store, not here.
type Config struct {
	WorkMinutes      int     `yaml:"work_minutes"`
	BreakMinutes     int     `yaml:"break_minutes"`
	RemindersEnabled bool    `yaml:"reminders_enabled"`
	SoundVolume      float64 `yaml:"sound_volume"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		WorkMinutes:      25,
		BreakMinutes:     5,
		RemindersEnabled: true,
		SoundVolume:      0.6,
	}
}

// DefaultPath resolves $XDG_CONFIG_HOME/studyterm/config.yaml,
// falling back to ~/.config.
func DefaultPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "studyterm", "config.yaml"), nil
}

// Load reads the configuration at path, filling gaps with defaults.
// A missing or unreadable file is not an error: the defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.WorkMinutes <= 0 {
		cfg.WorkMinutes = Default().WorkMinutes
	}
	if cfg.BreakMinutes <= 0 {
		cfg.BreakMinutes = Default().BreakMinutes
	}
	if cfg.SoundVolume < 0 || cfg.SoundVolume > 1 {
		cfg.SoundVolume = Default().SoundVolume
	}
	return cfg, nil
}

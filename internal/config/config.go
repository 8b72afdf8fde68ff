// Package config loads the stagium application configuration from YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the global application options. Per-repo overrides live in
// git config (see internal/prefs).
type Config struct {
	Theme      string // "dark" or "light"
	SelectMode bool   // explicit per-file commit selection
	LeftWidth  int    // file list width in columns, 0 = auto
	Wrap       bool   // wrap long diff lines
	SideBySide bool   // side-by-side diff rendering
}

// fileConfig uses pointers so absent keys keep their defaults.
type fileConfig struct {
	Theme      *string `yaml:"theme"`
	SelectMode *bool   `yaml:"select_mode"`
	LeftWidth  *int    `yaml:"left_width"`
	Wrap       *bool   `yaml:"wrap"`
	SideBySide *bool   `yaml:"side_by_side"`
}

// Default returns the built-in configuration values.
func Default() *Config {
	return &Config{
		Theme:      "dark",
		SideBySide: true,
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(dir, "stagium", "config.yaml"), nil
}

// Load reads the default config file. A missing file yields defaults.
func Load() (*Config, error) {
	p, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFrom(p)
}

// LoadFrom reads a config file, merging present keys over the defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if fc.Theme != nil {
		cfg.Theme = *fc.Theme
	}
	if fc.SelectMode != nil {
		cfg.SelectMode = *fc.SelectMode
	}
	if fc.LeftWidth != nil && *fc.LeftWidth > 0 {
		cfg.LeftWidth = *fc.LeftWidth
	}
	if fc.Wrap != nil {
		cfg.Wrap = *fc.Wrap
	}
	if fc.SideBySide != nil {
		cfg.SideBySide = *fc.SideBySide
	}
	return cfg, nil
}

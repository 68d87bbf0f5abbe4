// Package config loads the user configuration: theme colors per mode,
// shortcut key rebinds, the deriver script path, and assistant settings.
// A missing config file yields the defaults; a malformed one is an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/cluemark/internal/annotate"
	"github.com/dshills/cluemark/internal/renderer"
	"github.com/dshills/cluemark/internal/renderer/core"
)

// Config is the top-level configuration.
type Config struct {
	// Theme maps mode names to hex colors, e.g. fodder = "#E5C07B".
	Theme map[string]string `toml:"theme"`

	// Keys maps mode names to single-character shortcut rebinds.
	Keys map[string]string `toml:"keys"`

	Deriver   DeriverConfig   `toml:"deriver"`
	Assistant AssistantConfig `toml:"assistant"`
}

// DeriverConfig points at an optional Lua script that overrides the
// built-in resolution derivers.
type DeriverConfig struct {
	Script string `toml:"script"`
}

// AssistantConfig holds the Vertex AI settings for clue suggestions. The
// assistant stays disabled until a project is configured.
type AssistantConfig struct {
	Project  string `toml:"project"`
	Location string `toml:"location"`
	Model    string `toml:"model"`
}

// Enabled reports whether the assistant is configured.
func (a AssistantConfig) Enabled() bool {
	return a.Project != ""
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Assistant: AssistantConfig{
			Location: "us-central1",
			Model:    "gemini-2.0-flash",
		},
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config dir: %w", err)
	}
	return filepath.Join(dir, "cluemark", "config.toml"), nil
}

// Load reads the config file at path. A missing file returns the defaults;
// a file that exists but does not parse is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Assistant.Location == "" {
		cfg.Assistant.Location = Default().Assistant.Location
	}
	if cfg.Assistant.Model == "" {
		cfg.Assistant.Model = Default().Assistant.Model
	}
	return cfg, nil
}

// ApplyKeys rebinds mode shortcuts on a registry. Unknown modes and rebind
// conflicts are errors so a typo in the config is visible at startup.
func (c Config) ApplyKeys(reg annotate.Registry) (annotate.Registry, error) {
	for name, key := range c.Keys {
		runes := []rune(key)
		if len(runes) != 1 {
			return annotate.Registry{}, fmt.Errorf("key for %s must be one character, got %q", name, key)
		}
		next, err := reg.WithKey(annotate.Mode(name), runes[0])
		if err != nil {
			return annotate.Registry{}, fmt.Errorf("binding key for %s: %w", name, err)
		}
		reg = next
	}
	return reg, nil
}

// ApplyTheme overlays configured mode colors on a theme. Color values must
// be hex; mode names not in the base theme are accepted and added.
func (c Config) ApplyTheme(theme renderer.Theme) (renderer.Theme, error) {
	if len(c.Theme) == 0 {
		return theme, nil
	}

	modes := make(map[annotate.Mode]core.Style, len(theme.Modes))
	for k, v := range theme.Modes {
		modes[k] = v
	}
	for name, hex := range c.Theme {
		color, err := core.ColorFromHex(hex)
		if err != nil {
			return renderer.Theme{}, fmt.Errorf("theme color for %s: %w", name, err)
		}
		modes[annotate.Mode(name)] = theme.Text.WithForeground(color).Underline()
	}
	theme.Modes = modes
	return theme, nil
}

// Package config loads mdannotate settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds user configuration values.
type Config struct {
	// Label is the label applied when a command does not name one.
	Label string `toml:"label"`
	// Markdown renders chunk text as inline Markdown.
	Markdown bool `toml:"markdown"`
	// OverlapColor colors chunks carrying several labels.
	OverlapColor string            `toml:"overlap_color"`
	Colors       map[string]string `toml:"colors"`
	Log          Log               `toml:"log"`
}

// Log configures diagnostics.
type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Label:  "label",
		Colors: map[string]string{},
		Log:    Log{Level: "warn", Format: "text"},
	}
}

// Load reads the configuration at path. A missing file yields the defaults;
// keys absent from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.Label == "" {
		return nil, fmt.Errorf("%s: label must not be empty", path)
	}
	if cfg.Colors == nil {
		cfg.Colors = map[string]string{}
	}
	return cfg, nil
}

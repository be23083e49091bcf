package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

const (
	formatMultipart = "multipart"
	formatFields    = "fields"

	defaultAttachPrefix = "@"
)

// Static errors for configuration validation
var (
	ErrUnknownFormat = errors.New("unknown output format")
)

// Config holds the settings of a run. It is read from an optional TOML file
// and then overridden by command line flags.
type Config struct {
	Exclude  []string     `toml:"exclude"`
	Boundary string       `toml:"boundary"`
	Format   string       `toml:"format"`
	Attach   AttachConfig `toml:"attach"`
}

// AttachConfig controls how string values are turned into file attachments.
// A string starting with Prefix names a file. When BaseDir is set the name is
// resolved inside it and names escaping it are rejected; otherwise the name
// is used as a path as is. An empty Prefix disables attachments.
type AttachConfig struct {
	Prefix  *string `toml:"prefix"`
	BaseDir string  `toml:"base_dir"`
}

// AttachPrefix returns the configured prefix or the default one.
func (c AttachConfig) AttachPrefix() string {
	if c.Prefix == nil {
		return defaultAttachPrefix
	}
	return *c.Prefix
}

func defaultConfig() Config {
	return Config{Format: formatMultipart}
}

// loadConfig reads the TOML file at path on top of the defaults. An empty path
// returns the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if cfg.Format == "" {
		cfg.Format = formatMultipart
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Format {
	case formatMultipart, formatFields:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, c.Format)
	}
}

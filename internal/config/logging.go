package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

const (
	EnvLogLevel  = "MENUCATCH_LOG_LEVEL"
	EnvLogFormat = "MENUCATCH_LOG_FORMAT"
)

// LoggingConfig selects the service log level and handler format.
// Format is "text" or "json".
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`

	level slog.Level
}

// SlogLevel returns the finalized level.
func (c *LoggingConfig) SlogLevel() slog.Level {
	return c.level
}

// JSON reports whether records are written as JSON.
func (c *LoggingConfig) JSON() bool {
	return c.Format == "json"
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *LoggingConfig) Finalize() error {
	defaultString(&c.Level, "info")
	defaultString(&c.Format, "text")
	envString(&c.Level, EnvLogLevel)
	envString(&c.Format, EnvLogFormat)

	c.Format = strings.ToLower(c.Format)
	if c.Format != "text" && c.Format != "json" {
		return fmt.Errorf("invalid format %q", c.Format)
	}
	if err := c.level.UnmarshalText([]byte(c.Level)); err != nil {
		return fmt.Errorf("invalid level: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *LoggingConfig) Merge(overlay *LoggingConfig) {
	mergeString(&c.Level, overlay.Level)
	mergeString(&c.Format, overlay.Format)
}

func defaultString(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}

func mergeString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func envString(dst *string, name string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}

package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// SetLogLevel overrides the configured log level by name.
func (c *Config) SetLogLevel(name string) error {
	level, err := ParseLevel(name)
	if err != nil {
		return err
	}
	c.Logging.Level = strings.ToLower(name)
	c.Derived.LogLevel = level
	return nil
}

// NewLogger builds a slog logger writing to w with the configured format and level.
func (c *Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{Level: c.Derived.LogLevel}
	switch strings.ToLower(c.Logging.Format) {
	case "", "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	}
	return nil, fmt.Errorf("logging.format %q: %w", c.Logging.Format, ErrInvalid)
}

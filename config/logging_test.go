package config

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	logger, err := cfg.NewLogger(&buf)
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("hello", "n", 1)
	if !strings.HasPrefix(buf.String(), "{") {
		t.Errorf("Expected JSON output, got %q", buf.String())
	}
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("Debug should be disabled at info level")
	}

	cfg.Logging.Format = "text"
	if err := cfg.SetLogLevel("debug"); err != nil {
		t.Fatal(err)
	}
	buf.Reset()
	logger, err = cfg.NewLogger(&buf)
	if err != nil {
		t.Fatal(err)
	}
	logger.Debug("hello")
	if !strings.Contains(buf.String(), "msg=hello") {
		t.Errorf("Expected text output, got %q", buf.String())
	}

	cfg.Logging.Format = "xml"
	if _, err := cfg.NewLogger(&buf); !errors.Is(err, ErrInvalid) {
		t.Errorf("Expected ErrInvalid for unknown format, got %v", err)
	}
}

func TestSetLogLevel(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.SetLogLevel("WARN"); err != nil {
		t.Fatal(err)
	}
	if cfg.Derived.LogLevel != slog.LevelWarn || cfg.Logging.Level != "warn" {
		t.Errorf("Unexpected level %v / %q", cfg.Derived.LogLevel, cfg.Logging.Level)
	}
	if err := cfg.SetLogLevel("loud"); !errors.Is(err, ErrInvalid) {
		t.Errorf("Expected ErrInvalid, got %v", err)
	}
}

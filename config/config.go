// Package config provides configuration loading and access for ai-nav.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vincentfiestada/ai-nav/search"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is returned when a loaded configuration fails validation.
var ErrInvalid = errors.New("invalid config")

// Config holds all configuration parameters.
type Config struct {
	Grid      GridConfig      `yaml:"grid"`
	Search    SearchConfig    `yaml:"search"`
	Render    RenderConfig    `yaml:"render"`
	Logging   LoggingConfig   `yaml:"logging"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Compare   CompareConfig   `yaml:"compare"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// GridConfig holds the fixed grid dimensions.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SearchConfig holds the default strategy.
type SearchConfig struct {
	Strategy string `yaml:"strategy"` // bfs, dfs or astar
}

// RenderConfig holds text and terminal rendering settings.
type RenderConfig struct {
	DelayMS  int  `yaml:"delay_ms"`  // Pause between steps in the live view
	Headers  bool `yaml:"headers"`   // Print column and row numbers
	ShowPath bool `yaml:"show_path"` // Overlay the solution path
}

// LoggingConfig holds slog handler settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or text
}

// TelemetryConfig holds run output settings.
type TelemetryConfig struct {
	OutputDir string `yaml:"output_dir"` // empty = no CSV output
}

// CompareConfig holds batch comparison parameters.
type CompareConfig struct {
	Runs        int   `yaml:"runs"`         // Random scenarios per batch
	Seed        int64 `yaml:"seed"`         // 0 = time-based
	Polygons    int   `yaml:"polygons"`     // Obstacles per random scenario
	MaxVertices int   `yaml:"max_vertices"` // Upper bound on vertices per obstacle
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Strategy search.Strategy
	LogLevel slog.Level
	Cells    int // Grid.Width * Grid.Height
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// computeDerived validates the loaded values and calculates derived ones.
func (c *Config) computeDerived() error {
	if c.Grid.Width <= 0 || c.Grid.Height <= 0 {
		return fmt.Errorf("grid %dx%d: %w", c.Grid.Width, c.Grid.Height, ErrInvalid)
	}
	strategy, err := search.ParseStrategy(c.Search.Strategy)
	if err != nil {
		return fmt.Errorf("search.strategy: %w: %w", ErrInvalid, err)
	}
	level, err := ParseLevel(c.Logging.Level)
	if err != nil {
		return err
	}
	if c.Compare.Runs < 0 || c.Compare.Polygons < 0 {
		return fmt.Errorf("compare: negative counts: %w", ErrInvalid)
	}
	if c.Compare.MaxVertices < 3 {
		c.Compare.MaxVertices = 3
	}

	c.Derived.Strategy = strategy
	c.Derived.LogLevel = level
	c.Derived.Cells = c.Grid.Width * c.Grid.Height
	return nil
}

// SetStrategy overrides the configured strategy by name.
func (c *Config) SetStrategy(name string) error {
	strategy, err := search.ParseStrategy(name)
	if err != nil {
		return err
	}
	c.Search.Strategy = strategy.String()
	c.Derived.Strategy = strategy
	return nil
}

// ParseLevel maps a level name to a slog.Level. Empty means info.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("logging.level %q: %w", name, ErrInvalid)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Package config loads exposure-mcp settings from YAML.
//
// A missing file is not an error: Load returns DefaultConfig. Environment
// variables override file values:
//   - EXPOSURE_MCP_LOG_LEVEL: "debug", "info", "warn" or "error"
//   - EXPOSURE_MCP_GRANULARITY: "full", "half" or "third"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/exposure-tools-mcp/internal/exposure"
)

// Config holds all exposure-mcp configuration.
type Config struct {
	// Logging configuration
	Logging LoggingConfig `yaml:"logging"`

	// Exposure engine configuration
	Exposure ExposureConfig `yaml:"exposure"`

	// Preview rendering limits
	Preview PreviewConfig `yaml:"preview"`

	// Batch tool fan-out
	Batch BatchConfig `yaml:"batch"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// ExposureConfig configures the solver.
type ExposureConfig struct {
	// Granularity used when a request does not name one.
	Granularity string `yaml:"granularity"`

	// Tolerance factors per axis ("shutter", "aperture", "iso"). Missing axes
	// keep the built-in factor.
	Tolerance map[string]float64 `yaml:"tolerance,omitempty"`

	// Scales replaces built-in tables: axis -> granularity -> entries.
	Scales map[string]map[string][]string `yaml:"scales,omitempty"`
}

// PreviewConfig bounds exposure preview rendering.
type PreviewConfig struct {
	MaxWidth int `yaml:"max_width"`
	// CacheSize caps the decoded images kept between previews; 0 disables
	// the cap.
	CacheSize int `yaml:"cache_size"`
}

// BatchConfig bounds the batch solve tool.
type BatchConfig struct {
	// Concurrency is the number of solves run at once; 0 means GOMAXPROCS.
	Concurrency int `yaml:"concurrency"`
	// MaxItems rejects larger batches.
	MaxItems int `yaml:"max_items"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info"},
		Exposure: ExposureConfig{
			Granularity: exposure.Third.String(),
		},
		Preview: PreviewConfig{MaxWidth: 1024, CacheSize: 16},
		Batch:   BatchConfig{MaxItems: 256},
	}
}

// Load reads configuration from a YAML file. An empty path or a missing file
// yields the defaults; environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if level := os.Getenv("EXPOSURE_MCP_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if g := os.Getenv("EXPOSURE_MCP_GRANULARITY"); g != "" {
		c.Exposure.Granularity = g
	}
}

// Validate checks every value that a later step would otherwise reject.
func (c *Config) Validate() error {
	if _, err := c.DefaultGranularity(); err != nil {
		return fmt.Errorf("exposure.granularity: %w", err)
	}
	if _, err := c.SolverOptions(); err != nil {
		return err
	}
	if _, err := c.ScaleSet(); err != nil {
		return err
	}
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unknown level %q", c.Logging.Level)
	}
	if c.Batch.Concurrency < 0 || c.Batch.MaxItems < 0 || c.Preview.MaxWidth < 0 || c.Preview.CacheSize < 0 {
		return fmt.Errorf("batch and preview limits must not be negative")
	}
	return nil
}

// DefaultGranularity parses Exposure.Granularity.
func (c *Config) DefaultGranularity() (exposure.Granularity, error) {
	if c.Exposure.Granularity == "" {
		return exposure.Third, nil
	}
	return exposure.ParseGranularity(c.Exposure.Granularity)
}

// SolverOptions converts the tolerance table into solver options.
func (c *Config) SolverOptions() ([]exposure.Option, error) {
	var opts []exposure.Option
	for name, factor := range c.Exposure.Tolerance {
		axis, err := exposure.ParseAxis(name)
		if err != nil {
			return nil, fmt.Errorf("exposure.tolerance: %w", err)
		}
		if factor < 1 {
			return nil, fmt.Errorf("exposure.tolerance.%s: factor %v must be at least 1", name, factor)
		}
		opts = append(opts, exposure.WithTolerance(axis, factor))
	}
	return opts, nil
}

// ScaleSet merges the configured tables over the built-in scales.
func (c *Config) ScaleSet() (*exposure.ScaleSet, error) {
	if len(c.Exposure.Scales) == 0 {
		return exposure.DefaultScales(), nil
	}

	var overrides []*exposure.Scale
	for axisName, byGranularity := range c.Exposure.Scales {
		axis, err := exposure.ParseAxis(axisName)
		if err != nil {
			return nil, fmt.Errorf("exposure.scales: %w", err)
		}
		for gName, entries := range byGranularity {
			g, err := exposure.ParseGranularity(gName)
			if err != nil {
				return nil, fmt.Errorf("exposure.scales.%s: %w", axisName, err)
			}
			s, err := exposure.NewScale(axis, g, entries)
			if err != nil {
				return nil, fmt.Errorf("exposure.scales.%s.%s: %w", axisName, gName, err)
			}
			overrides = append(overrides, s)
		}
	}
	return exposure.DefaultScales().With(overrides...)
}

// NewSolver builds a solver from the configured scales and tolerances.
func (c *Config) NewSolver() (*exposure.Solver, error) {
	scales, err := c.ScaleSet()
	if err != nil {
		return nil, err
	}
	opts, err := c.SolverOptions()
	if err != nil {
		return nil, err
	}
	return exposure.NewSolver(scales, opts...), nil
}

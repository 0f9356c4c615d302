// Package config loads the server's tuning knobs from YAML.
//
// Every field has a default, so a config file only needs the keys it changes:
//
//	thresholds:
//	  min_blackness: 40
//	edge:
//	  dilate_radius: 2
//
// The file is located through the SCREEN_MCP_CONFIG environment variable.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/screen-finder-mcp/internal/contour"
	"github.com/ironsheep/screen-finder-mcp/internal/imaging"
	"github.com/ironsheep/screen-finder-mcp/internal/screens"
)

// Environment variables read by the server.
const (
	EnvConfigPath = "SCREEN_MCP_CONFIG"
	EnvLogLevel   = "SCREEN_MCP_LOG_LEVEL"
)

// Config is the complete server configuration.
type Config struct {
	Edge       contour.EdgeParams `yaml:"edge"`
	Thresholds screens.Thresholds `yaml:"thresholds"`
	Blackness  BlacknessConfig    `yaml:"blackness"`
	Batch      BatchConfig        `yaml:"batch"`
}

// BlacknessConfig selects the blackness metric used for classification.
type BlacknessConfig struct {
	// Method is one of luminance, rgb_sum, hsv_value or euclidean.
	Method string `yaml:"method"`
}

// BatchConfig controls parallel detection.
type BatchConfig struct {
	// Workers caps concurrent images. Zero means one per CPU.
	Workers int `yaml:"workers"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Edge:       contour.DefaultEdgeParams(),
		Thresholds: screens.DefaultThresholds(),
		Blackness:  BlacknessConfig{Method: string(imaging.BlacknessLuminance)},
	}
}

// Load reads a YAML file over the defaults. A missing file is not an error;
// the defaults are returned unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// FromEnv loads the file named by SCREEN_MCP_CONFIG, or returns the defaults
// when the variable is unset.
func FromEnv() (*Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// DebugEnabled reports whether SCREEN_MCP_LOG_LEVEL asks for debug output.
func DebugEnabled() bool {
	return strings.EqualFold(os.Getenv(EnvLogLevel), "debug")
}

// Save writes cfg to path as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

// Encode writes cfg to w as YAML.
func (c *Config) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return enc.Close()
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Edge.Validate(); err != nil {
		return err
	}
	if err := c.Thresholds.Validate(); err != nil {
		return err
	}
	if _, err := imaging.ParseBlacknessMethod(c.Blackness.Method); err != nil {
		return err
	}
	if c.Batch.Workers < 0 {
		return fmt.Errorf("batch workers must not be negative, got %d", c.Batch.Workers)
	}
	return nil
}

// NewDetector builds a screens.Detector from the configuration. A nil logger
// discards output.
func (c *Config) NewDetector(logger *log.Logger) (*screens.Detector, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	source, err := contour.NewSource(c.Edge)
	if err != nil {
		return nil, err
	}
	method, _ := imaging.ParseBlacknessMethod(c.Blackness.Method)
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return screens.NewDetector(
		screens.WithSource(source),
		screens.WithMeter(imaging.BlacknessMeter{Method: method}),
		screens.WithThresholds(c.Thresholds),
		screens.WithLogger(logger),
	), nil
}

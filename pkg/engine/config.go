package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all parameters for a search run.
type Config struct {
	Catalog      string  `yaml:"catalog" json:"catalog"`
	Strategy     string  `yaml:"strategy" json:"strategy"`
	TargetMin    int     `yaml:"target_min" json:"target_min"`
	TargetMax    int     `yaml:"target_max" json:"target_max"`
	MaxDepth     int     `yaml:"max_depth" json:"max_depth"`
	MaxMagnitude float64 `yaml:"max_magnitude" json:"max_magnitude"`
	Workers      int     `yaml:"workers" json:"workers"`
	Format       string  `yaml:"format" json:"format"` // "text", "table" or "json"
	Quiet        bool    `yaml:"quiet" json:"quiet"`
	LogLevel     string  `yaml:"log_level" json:"log_level"`
	MetricsAddr  string  `yaml:"metrics_addr" json:"metrics_addr,omitempty"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Catalog:      "extended",
		Strategy:     "sequential",
		TargetMin:    0,
		TargetMax:    100,
		MaxDepth:     11,
		MaxMagnitude: 1e6,
		Workers:      runtime.NumCPU(),
		Format:       "text",
		LogLevel:     "info",
	}
}

// LoadConfig reads a YAML (or JSON) file over the defaults. An empty path
// returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("load config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		if jsonErr := json.Unmarshal(data, &cfg); jsonErr != nil {
			return cfg, fmt.Errorf("parse config (tried YAML and JSON): YAML error: %v, JSON error: %w", err, jsonErr)
		}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate checks that the configuration is usable. Catalog and strategy
// names are resolved by New.
func (c Config) Validate() error {
	var problems []string
	if c.Catalog == "" {
		problems = append(problems, "catalog must be set")
	}
	if c.Strategy == "" {
		problems = append(problems, "strategy must be set")
	}
	if c.TargetMax < c.TargetMin {
		problems = append(problems, fmt.Sprintf("target_max %d is below target_min %d", c.TargetMax, c.TargetMin))
	}
	if c.MaxDepth < 1 {
		problems = append(problems, fmt.Sprintf("max_depth must be positive, got %d", c.MaxDepth))
	}
	if c.MaxMagnitude < 0 {
		problems = append(problems, fmt.Sprintf("max_magnitude must not be negative, got %g", c.MaxMagnitude))
	}
	if c.Workers < 1 {
		problems = append(problems, fmt.Sprintf("workers must be at least 1, got %d", c.Workers))
	}
	if c.Format != "text" && c.Format != "table" && c.Format != "json" {
		problems = append(problems, fmt.Sprintf("format must be text, table or json, got %q", c.Format))
	}
	if !logLevels[strings.ToLower(c.LogLevel)] {
		problems = append(problems, fmt.Sprintf("unknown log_level %q", c.LogLevel))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a configuration value is out of range.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds recognizer and library settings.
type Config struct {
	// NumPoints is the number of points every stroke is resampled to.
	// Default: 16
	NumPoints int `yaml:"num_points"`

	// MaxPoints bounds the length of raw strokes. Zero disables the limit.
	// Default: 1024
	MaxPoints int `yaml:"max_points"`

	// OrientationSensitive keeps a stroke's base direction (to the nearest
	// 45 degrees) during normalization.
	// Default: false
	OrientationSensitive bool `yaml:"orientation_sensitive"`

	// PoolSize is the number of workers used to preprocess templates.
	// Default: runtime.NumCPU() / 2, minimum 1
	PoolSize int `yaml:"pool_size"`

	// MinScore is the lowest score the CLI reports as a match. Results below
	// it are reported as unrecognized.
	// Default: 0
	MinScore float64 `yaml:"min_score"`

	// ImportBatchSize is the number of templates written per transaction
	// during import.
	// Default: 100
	ImportBatchSize int `yaml:"import_batch_size"`
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithNumPoints sets the resample count.
func WithNumPoints(n int) ConfigOption {
	return func(c *Config) {
		c.NumPoints = n
	}
}

// WithMaxPoints sets the raw stroke length limit.
func WithMaxPoints(n int) ConfigOption {
	return func(c *Config) {
		c.MaxPoints = n
	}
}

// WithOrientationSensitive toggles orientation-sensitive normalization.
func WithOrientationSensitive(enabled bool) ConfigOption {
	return func(c *Config) {
		c.OrientationSensitive = enabled
	}
}

// WithPoolSize sets the preprocessing worker count.
func WithPoolSize(size int) ConfigOption {
	return func(c *Config) {
		c.PoolSize = size
	}
}

// WithMinScore sets the score threshold for reporting a match.
func WithMinScore(score float64) ConfigOption {
	return func(c *Config) {
		c.MinScore = score
	}
}

// WithImportBatchSize sets the import batch size.
func WithImportBatchSize(size int) ConfigOption {
	return func(c *Config) {
		c.ImportBatchSize = size
	}
}

// DefaultConfig returns a Config with the standard recognizer settings.
func DefaultConfig() *Config {
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	return &Config{
		NumPoints:       16,
		MaxPoints:       1024,
		PoolSize:        poolSize,
		MinScore:        0,
		ImportBatchSize: 100,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithNumPoints(32),
//	    WithOrientationSensitive(true),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.NumPoints < 2 {
		return fmt.Errorf("%w: num_points must be at least 2, got %d", ErrInvalidConfig, c.NumPoints)
	}
	if c.MaxPoints < 0 {
		return fmt.Errorf("%w: max_points cannot be negative, got %d", ErrInvalidConfig, c.MaxPoints)
	}
	if c.PoolSize < 1 {
		return fmt.Errorf("%w: pool_size must be at least 1, got %d", ErrInvalidConfig, c.PoolSize)
	}
	if c.MinScore < 0 {
		return fmt.Errorf("%w: min_score cannot be negative, got %g", ErrInvalidConfig, c.MinScore)
	}
	if c.ImportBatchSize < 1 {
		return fmt.Errorf("%w: import_batch_size must be at least 1, got %d", ErrInvalidConfig, c.ImportBatchSize)
	}
	return nil
}

// LoadFile reads a YAML configuration file. Keys missing from the file keep
// their default values. Unrecognised keys are logged as warnings and ignored.
// A nil logger uses slog.Default().
func LoadFile(path string, logger *slog.Logger) (*Config, error) {
	if logger == nil {
		logger = slog.Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, logger.With("path", path))
}

// Parse decodes YAML configuration data on top of the defaults.
func Parse(data []byte, logger *slog.Logger) (*Config, error) {
	if logger == nil {
		logger = slog.Default()
	}

	// Check for unrecognised keys
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	knownKeys := getKnownKeys(Config{})
	for key := range raw {
		if !knownKeys[key] {
			logger.Warn("unrecognised setting key in config file", "key", key)
		}
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WriteFile writes the configuration as YAML.
func (c *Config) WriteFile(path string) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

func getKnownKeys(v any) map[string]bool {
	keys := make(map[string]bool)
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	for i := 0; i < t.NumField(); i++ {
		// Handle tags like "field,omitempty"
		tagName, _, _ := strings.Cut(t.Field(i).Tag.Get("yaml"), ",")
		if tagName != "" && tagName != "-" {
			keys[tagName] = true
		}
	}
	return keys
}

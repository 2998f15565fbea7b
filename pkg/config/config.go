// Package config defines the settings of an evaluation run and loads them
// from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sanonone/kektorknn/pkg/core/distance"
	"github.com/sanonone/kektorknn/pkg/core/types"
	"github.com/sanonone/kektorknn/pkg/loader"
)

type Config struct {
	// Dataset
	DataPath string `yaml:"data_path"` // local file, ".sz" file or "s3://bucket/key"
	Features int    `yaml:"features"`  // 0 infers the arity from the data

	// Classifier
	K      int    `yaml:"k"`
	Metric string `yaml:"metric"` // name ("manhattan") or console code ("2")
	Sweep  bool   `yaml:"sweep"`  // evaluate every metric with the same k

	// Output
	PrintSamples bool   `yaml:"print_samples"`
	MetricsAddr  string `yaml:"metrics_addr"` // e.g. ":9093"; empty disables the listener

	S3 loader.S3Config `yaml:"s3"`
}

// DefaultConfig returns the settings for the reference iris dataset.
func DefaultConfig() Config {
	return Config{
		Features: loader.DefaultFeatures,
		K:        3,
		Metric:   string(distance.Euclidean),
	}
}

// LoadConfig reads the YAML configuration file using strict parsing.
// Fields missing from the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("YAML syntax error in config: %w", err)
	}

	return cfg, nil
}

// Validate checks the settings and resolves the metric selector.
func (c Config) Validate() (distance.Metric, error) {
	if c.K < 1 {
		return "", fmt.Errorf("%w: k must be at least 1, got %d", types.ErrConfiguration, c.K)
	}
	if c.Features < 0 {
		return "", fmt.Errorf("%w: features must not be negative, got %d", types.ErrConfiguration, c.Features)
	}
	return distance.Parse(c.Metric)
}

// LoaderOptions returns the dataset loader settings.
func (c Config) LoaderOptions() loader.Options {
	return loader.Options{Features: c.Features, S3: c.S3}
}

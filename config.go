package mahalanobis

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ParseConfig decodes a YAML document into a Config. Fields missing from the
// document keep their DefaultConfig values.
//
//	percentage: 25
//	subsample_size: 500
//	subsample_method: systematic
//	seed: 42
//	workers: 4
func ParseConfig(b []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("mahalanobis: parsing config: %w", err)
	}
	if err := validateConfig(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and decodes the YAML config file at path.
func LoadConfig(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("mahalanobis: reading config: %w", err)
	}
	return ParseConfig(b)
}

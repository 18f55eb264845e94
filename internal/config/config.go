package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type FilterConfig struct {
	// Size and NumHashes configure the filter directly when both are set.
	Size      int `yaml:"size"`
	NumHashes int `yaml:"num_hashes"`

	// ExpectedItems and FPRate size the filter from estimates instead,
	// when Size is unset.
	ExpectedItems uint64  `yaml:"expected_items"`
	FPRate        float64 `yaml:"fp_rate"`

	// Hash selects the hash family: "xxh3" (default) or "murmur3".
	Hash string `yaml:"hash"`
}

type EstimatorConfig struct {
	// TargetError is the relative error the cardinality estimator should
	// aim for, e.g. 0.005 for 0.5%.
	TargetError float64 `yaml:"target_error"`
}

type Config struct {
	Filter    FilterConfig    `yaml:"filter"`
	Estimator EstimatorConfig `yaml:"estimator"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads a YAML config file and fills in defaults for unset fields.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Filter.Size == 0 && c.Filter.ExpectedItems == 0 {
		c.Filter.Size = 1000
	}
	if c.Filter.NumHashes == 0 {
		c.Filter.NumHashes = 3
	}
	if c.Filter.FPRate == 0 {
		c.Filter.FPRate = 0.01
	}
	if c.Filter.Hash == "" {
		c.Filter.Hash = "xxh3"
	}
	if c.Estimator.TargetError == 0 {
		c.Estimator.TargetError = 0.005
	}
}

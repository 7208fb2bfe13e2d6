package application

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Package-level validator instance for configuration validation.
var validate = validator.New()

// RunConfig is the yaml-facing description of one grouper run: which
// strategy to use, the target group size, and strategy-specific
// parameters such as an annealing schedule or a tie-break policy.
type RunConfig struct {
	// Strategy selects the grouping strategy to run.
	Strategy string `yaml:"strategy" validate:"required,oneof=alphabetical greedy simulated_annealing"`

	// TargetGroupSize is the desired group size; groups may deviate by
	// at most one when the roster does not divide evenly.
	TargetGroupSize int `yaml:"target_group_size" validate:"required,min=1"`

	// Parameters holds strategy-specific configuration decoded as
	// flexible yaml and validated by the strategy's own constructor.
	Parameters map[string]any `yaml:"parameters"`
}

// ParseRunConfig decodes and validates a run configuration from yaml.
func ParseRunConfig(data []byte) (*RunConfig, error) {
	var cfg RunConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse run config: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("run config validation failed: %w", err)
	}
	return &cfg, nil
}

// LoadRunConfig reads a run configuration from a yaml file.
func LoadRunConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read run config %s: %w", path, err)
	}
	return ParseRunConfig(data)
}

// Package config holds the training configuration shared by the command-line tools.
package config

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Config holds training configuration.
type Config struct {
	Architecture    []int   // Layer sizes, input first
	DataPath        string  // Training data (JSON, CSV or IDX images)
	LabelsPath      string  // IDX labels, only for IDX data
	ModelPath       string  // Where the network is saved
	Epochs          int     // Passes over the dataset
	LR              float64 // Learning rate
	Seed            uint64  // Weight initialization seed
	InputWidth      int     // CSV input columns, 0 = derive from Architecture
	MaxSamples      int     // Limit on loaded examples, 0 = all
	SkipInvalid     bool    // Skip examples that do not fit the network
	CheckpointEvery int     // Save every N epochs, 0 = only at the end
	Resume          bool    // Continue from ModelPath when it exists
}

// Default returns the configuration used when no flags are given.
func Default() Config {
	return Config{
		Architecture: []int{2, 3, 1},
		ModelPath:    "model.ffnn",
		Epochs:       1000,
		LR:           0.1,
		Seed:         1,
	}
}

// ParseArchitecture parses an architecture string such as "2 3 1" or "784,32,10" into
// layer sizes.
func ParseArchitecture(archStr string) ([]int, error) {
	archParts := fields(archStr)
	arch := make([]int, len(archParts))
	for i, s := range archParts {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid layer size %q", s)
		}
		arch[i] = n
	}
	return arch, nil
}

// ParseVector parses a comma or space separated list of numbers such as "1,0".
func ParseVector(s string) ([]float64, error) {
	parts := fields(s)
	if len(parts) == 0 {
		return nil, errors.New("empty vector")
	}
	v := make([]float64, len(parts))
	for i, p := range parts {
		x, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid value %q at position %d", p, i)
		}
		v[i] = x
	}
	return v, nil
}

func fields(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}

// Validate validates training configuration.
func Validate(config *Config) error {
	if len(config.Architecture) < 2 {
		return errors.New("architecture must have at least 2 layers (input and output)")
	}
	for i, n := range config.Architecture {
		if n <= 0 {
			return errors.Errorf("layer %d size must be positive, got %d", i, n)
		}
	}

	if config.DataPath == "" {
		return errors.New("data path is required")
	}

	if config.ModelPath == "" {
		return errors.New("model path is required")
	}

	if config.Epochs <= 0 {
		return errors.New("epochs must be positive")
	}

	if config.LR <= 0 {
		return errors.New("learning rate must be positive")
	}

	if config.InputWidth < 0 || config.MaxSamples < 0 || config.CheckpointEvery < 0 {
		return errors.New("input width, max samples and checkpoint interval must not be negative")
	}

	return nil
}

package sim

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/routing-sim/cvrp-sim/sim/trace"
)

// RunBundle holds run configuration, loadable from a YAML file.
// Nil pointer fields mean "not set in YAML" and do not override flag defaults.
// String fields use empty string for "not set".
type RunBundle struct {
	Policy       string `yaml:"policy"`
	Trajectories *int   `yaml:"trajectories"`
	Workers      *int   `yaml:"workers"`
	BatchSize    *int   `yaml:"batch_size"`
	AugFactor    *int   `yaml:"aug_factor"`
	MaxSteps     *int   `yaml:"max_steps"`
	Trace        string `yaml:"trace"`
}

// LoadRunBundle reads and parses a YAML run configuration file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadRunBundle(path string) (*RunBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run config: %w", err)
	}
	var bundle RunBundle
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&bundle); err != nil {
		return nil, fmt.Errorf("parsing run config: %w", err)
	}
	return &bundle, nil
}

// Validate checks that policy names and parameter ranges in the bundle are valid.
func (b *RunBundle) Validate() error {
	if !IsValidPolicy(b.Policy) {
		return fmt.Errorf("unknown policy %q", b.Policy)
	}
	if !trace.IsValidTraceLevel(b.Trace) {
		return fmt.Errorf("unknown trace level %q", b.Trace)
	}
	if b.Trajectories != nil && *b.Trajectories < 1 {
		return fmt.Errorf("trajectories must be >= 1, got %d", *b.Trajectories)
	}
	if b.Workers != nil && *b.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", *b.Workers)
	}
	if b.BatchSize != nil && *b.BatchSize < 1 {
		return fmt.Errorf("batch_size must be >= 1, got %d", *b.BatchSize)
	}
	if b.AugFactor != nil && *b.AugFactor < 1 {
		return fmt.Errorf("aug_factor must be >= 1, got %d", *b.AugFactor)
	}
	if b.MaxSteps != nil && *b.MaxSteps < 0 {
		return fmt.Errorf("max_steps must be non-negative, got %d", *b.MaxSteps)
	}
	return nil
}

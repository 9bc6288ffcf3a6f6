// Package instance reads, writes and generates CVRP problem batches.
package instance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/routing-sim/cvrp-sim/sim"
)

// FileVersion is written into every saved problem file.
const FileVersion = "1"

// ProblemFile is the on-disk layout of a problem batch. Demand excludes
// the depot; NodeDemand[b] has ProblemSize entries.
type ProblemFile struct {
	Version        string           `yaml:"version" json:"version"`
	ProblemSize    int              `yaml:"problem_size" json:"problem_size"`
	DistanceMatrix [][][]float64    `yaml:"distance_matrix" json:"distance_matrix"`
	NodeDemand     [][]float64      `yaml:"node_demand" json:"node_demand"`
	Generator      *GeneratorConfig `yaml:"generator,omitempty" json:"generator,omitempty"`
}

type format int

const (
	formatYAML format = iota
	formatJSON
)

func formatFor(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML, nil
	case ".json":
		return formatJSON, nil
	default:
		return 0, fmt.Errorf("unsupported problem file extension %q; valid: .yaml, .yml, .json", filepath.Ext(path))
	}
}

// Load reads a problem file and returns a validated ProblemBatch.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func Load(path string) (*sim.ProblemBatch, error) {
	pf, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return pf.Batch()
}

// LoadFile reads and parses a problem file without building the batch.
func LoadFile(path string) (*ProblemFile, error) {
	f, err := formatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading problem file: %w", err)
	}
	var pf ProblemFile
	switch f {
	case formatJSON:
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		err = decoder.Decode(&pf)
	default:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		err = decoder.Decode(&pf)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing problem file: %w", err)
	}
	return &pf, nil
}

// Batch converts the file contents into a validated ProblemBatch.
func (pf *ProblemFile) Batch() (*sim.ProblemBatch, error) {
	if pf.ProblemSize > 0 {
		for b, d := range pf.NodeDemand {
			if len(d) != pf.ProblemSize {
				return nil, fmt.Errorf("%w: instance %d has %d demands, problem_size is %d",
					sim.ErrInvalidProblemData, b, len(d), pf.ProblemSize)
			}
		}
	}
	return sim.NewProblemBatch(pf.DistanceMatrix, pf.NodeDemand)
}

// NewProblemFile captures pb in file layout, dropping the depot's demand.
func NewProblemFile(pb *sim.ProblemBatch) *ProblemFile {
	pf := &ProblemFile{
		Version:        FileVersion,
		ProblemSize:    pb.Customers(),
		DistanceMatrix: pb.Distance,
		NodeDemand:     make([][]float64, pb.Size()),
	}
	for b, d := range pb.Demand {
		pf.NodeDemand[b] = d[1:]
	}
	return pf
}

// Save writes pb to path in the format implied by its extension.
func Save(path string, pb *sim.ProblemBatch) error {
	return SaveFile(path, NewProblemFile(pb))
}

// SaveFile writes pf to path in the format implied by its extension.
func SaveFile(path string, pf *ProblemFile) error {
	f, err := formatFor(path)
	if err != nil {
		return err
	}
	var data []byte
	switch f {
	case formatJSON:
		data, err = json.MarshalIndent(pf, "", "  ")
	default:
		data, err = yaml.Marshal(pf)
	}
	if err != nil {
		return fmt.Errorf("encoding problem file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing problem file: %w", err)
	}
	return nil
}

package instance

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routing-sim/cvrp-sim/sim"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_ValidYAML_PrependsDepotDemand(t *testing.T) {
	// GIVEN a one-instance, two-customer problem in YAML
	path := writeTemp(t, "p.yaml", `
version: "1"
problem_size: 2
distance_matrix:
  - - [0, 1, 2]
    - [1, 0, 1]
    - [2, 1, 0]
node_demand:
  - [0.5, 0.25]
`)

	// WHEN loaded
	pb, err := Load(path)

	// THEN the batch carries the depot's zero demand in front
	require.NoError(t, err)
	assert.Equal(t, 1, pb.Size())
	assert.Equal(t, 2, pb.Customers())
	assert.Equal(t, []float64{0, 0.5, 0.25}, pb.Demand[0])
	assert.Equal(t, 2.0, pb.Distance[0][0][2])
}

func TestLoad_UnknownField_Rejected(t *testing.T) {
	path := writeTemp(t, "p.yaml", `
problem_size: 1
distance_matrix: [[[0, 1], [1, 0]]]
node_demand: [[0.5]]
node_demands: [[0.5]]
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_JSONUnknownField_Rejected(t *testing.T) {
	path := writeTemp(t, "p.json", `{"problem_size": 1, "distance_matrix": [[[0,1],[1,0]]], "node_demand": [[0.5]], "extra": 1}`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_ProblemSizeMismatch_InvalidProblemData(t *testing.T) {
	path := writeTemp(t, "p.json", `{"problem_size": 2, "distance_matrix": [[[0,1],[1,0]]], "node_demand": [[0.5]]}`)
	_, err := Load(path)
	assert.True(t, errors.Is(err, sim.ErrInvalidProblemData), "got %v", err)
}

func TestLoad_DemandOverCapacity_InvalidProblemData(t *testing.T) {
	path := writeTemp(t, "p.yaml", `
distance_matrix: [[[0, 1], [1, 0]]]
node_demand: [[1.5]]
`)
	_, err := Load(path)
	assert.True(t, errors.Is(err, sim.ErrInvalidProblemData), "got %v", err)
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	path := writeTemp(t, "p.pt", "")
	_, err := Load(path)
	assert.ErrorContains(t, err, "unsupported problem file extension")
}

func TestSave_ThenLoad_PreservesBatch(t *testing.T) {
	pb, err := sim.NewProblemBatch(
		[][][]float64{{{0, 1.5}, {2.5, 0}}, {{0, 3}, {4, 0}}},
		[][]float64{{0.3}, {0.9}},
	)
	require.NoError(t, err)

	for _, name := range []string{"out.yaml", "out.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, Save(path, pb))

			got, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, pb.Distance, got.Distance)
			assert.Equal(t, pb.Demand, got.Demand)
		})
	}
}

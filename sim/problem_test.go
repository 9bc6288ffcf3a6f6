package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProblemBatch_PrependsDepotAndCopies(t *testing.T) {
	// GIVEN caller-owned input slices
	distance := [][][]float64{{{0, 2}, {3, 0}}}
	demand := [][]float64{{0.25}}

	// WHEN a batch is built and the inputs are mutated afterwards
	pb, err := NewProblemBatch(distance, demand)
	require.NoError(t, err)
	distance[0][0][1] = 99
	demand[0][0] = 0.9

	// THEN the batch holds its own copy with the depot demand prepended
	assert.Equal(t, []float64{0, 0.25}, pb.Demand[0])
	assert.Equal(t, 2.0, pb.Distance[0][0][1])
	assert.Equal(t, 1, pb.Size())
	assert.Equal(t, 1, pb.Customers())
	assert.Equal(t, 2, pb.Nodes())
}

func TestNewProblemBatch_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		distance [][][]float64
		demand   [][]float64
	}{
		{"batch length mismatch", [][][]float64{{{0, 1}, {1, 0}}}, [][]float64{{0.1}, {0.1}}},
		{"no customers", [][][]float64{{{0}}}, [][]float64{{}}},
		{"matrix too small", [][][]float64{{{0, 1}, {1, 0}}}, [][]float64{{0.1, 0.2}}},
		{"ragged demand across batch", [][][]float64{{{0, 1}, {1, 0}}, {{0, 1}, {1, 0}}}, [][]float64{{0.1}, {0.1, 0.1}}},
		{"negative demand", [][][]float64{{{0, 1}, {1, 0}}}, [][]float64{{-0.1}}},
		{"demand exceeds capacity", [][][]float64{{{0, 1}, {1, 0}}}, [][]float64{{1.01}}},
		{"NaN demand", [][][]float64{{{0, 1}, {1, 0}}}, [][]float64{{math.NaN()}}},
		{"negative distance", [][][]float64{{{0, -1}, {1, 0}}}, [][]float64{{0.1}}},
		{"infinite distance", [][][]float64{{{0, math.Inf(1)}, {1, 0}}}, [][]float64{{0.1}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewProblemBatch(tc.distance, tc.demand)
			assert.ErrorIs(t, err, ErrInvalidProblemData)
		})
	}
}

func TestNewProblemBatch_DemandEqualToCapacityAccepted(t *testing.T) {
	_, err := NewProblemBatch([][][]float64{{{0, 1}, {1, 0}}}, [][]float64{{1.0}})
	assert.NoError(t, err)
}

func TestProblemBatch_Repeat_TilesInstances(t *testing.T) {
	pb := lineBatch(t, 2, 0.1, 0.2)
	pb.Demand[1] = []float64{0, 0.3, 0.4}

	rep, err := pb.Repeat(3)
	require.NoError(t, err)

	assert.Equal(t, 6, rep.Size())
	for a := 0; a < 3; a++ {
		assert.Equal(t, pb.Demand[0], rep.Demand[a*2])
		assert.Equal(t, pb.Demand[1], rep.Demand[a*2+1])
	}
	_, err = pb.Repeat(0)
	assert.ErrorIs(t, err, ErrInvalidProblemData)
}

func TestProblemBatch_Slice(t *testing.T) {
	pb := lineBatch(t, 4, 0.1)

	sub, err := pb.Slice(1, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, sub.Size())

	_, err = pb.Slice(3, 5)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = pb.Slice(2, 2)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

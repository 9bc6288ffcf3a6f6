// Package testutil provides shared test infrastructure for the CVRP
// simulator: small hand-checkable problem fixtures and float assertions
// used across sim/ and its sub-package tests.
package testutil

import (
	"math"
	"testing"
)

// LineDistance returns the Euclidean distance matrix over points on a line.
func LineDistance(points []float64) [][]float64 {
	n := len(points)
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, n)
		for j := range out[i] {
			out[i][j] = math.Abs(points[i] - points[j])
		}
	}
	return out
}

// LineProblem returns batch copies of a line instance with the depot at
// x=0 and customer i at x=i, in the [B][P+1][P+1] / [B][P] layout of
// NewProblemBatch. demand holds the P customer demands.
func LineProblem(batch int, demand []float64) ([][][]float64, [][]float64) {
	points := make([]float64, len(demand)+1)
	for i := range points {
		points[i] = float64(i)
	}
	distance := make([][][]float64, batch)
	demands := make([][]float64, batch)
	for b := 0; b < batch; b++ {
		distance[b] = LineDistance(points)
		demands[b] = append([]float64(nil), demand...)
	}
	return distance, demands
}

// Broadcast builds a [B][M] selection with every cell set to node.
func Broadcast(batch, trajectories, node int) [][]int {
	out := make([][]int, batch)
	for b := range out {
		out[b] = make([]int, trajectories)
		for m := range out[b] {
			out[b][m] = node
		}
	}
	return out
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

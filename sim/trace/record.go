// Package trace provides step-trace recording for rollout analysis.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// StepRecord captures the selections of one environment step.
// Slices are shaped [B][M] and owned by the record.
type StepRecord struct {
	Step              int
	Selected          [][]int
	RemainingCapacity [][]float64
	FinishedCount     int // trajectories finished after this step
}

package sim

// NoNode marks a trajectory that has not selected any node yet.
const NoNode = -1

// ExcludedBias is added to a decision-maker's score for every excluded node.
// It is large enough that no finite score of practical magnitude can
// overcome it, yet finite so that score arithmetic never produces NaN.
const ExcludedBias = -1e9

// ResetObservation exposes the static problem data published by Reset.
// It carries no dynamic fields: no decision has been made yet.
type ResetObservation struct {
	Distance [][][]float64 // [B][P+1][P+1]
	Demand   [][]float64   // [B][P+1], Demand[b][0] == 0
}

// StepObservation is a snapshot of the dynamic state of every trajectory.
// All per-trajectory slices are shaped [B][M]; Mask is [B][M][P+1].
// The snapshot is a copy: mutating it does not affect the Environment.
type StepObservation struct {
	StepCount         int
	RemainingCapacity [][]float64
	CurrentNode       [][]int // NoNode before the first step
	// Mask[b][m][i] is true when node i is excluded for trajectory (b, m).
	Mask     [][][]bool
	Finished [][]bool
}

// Eligible reports whether trajectory (b, m) may select node next.
func (o *StepObservation) Eligible(b, m, node int) bool {
	return !o.Mask[b][m][node]
}

// Bias converts the boolean mask into an additive score bias: 0 for an
// eligible node, ExcludedBias for an excluded one.
func (o *StepObservation) Bias() [][][]float64 {
	out := make([][][]float64, len(o.Mask))
	for b := range o.Mask {
		out[b] = make([][]float64, len(o.Mask[b]))
		for m := range o.Mask[b] {
			row := make([]float64, len(o.Mask[b][m]))
			for i, excluded := range o.Mask[b][m] {
				if excluded {
					row[i] = ExcludedBias
				}
			}
			out[b][m] = row
		}
	}
	return out
}

// Batch returns B.
func (o *StepObservation) Batch() int { return len(o.Finished) }

// Trajectories returns M.
func (o *StepObservation) Trajectories() int {
	if len(o.Finished) == 0 {
		return 0
	}
	return len(o.Finished[0])
}

// FinishedCount returns how many trajectories have served every customer.
func (o *StepObservation) FinishedCount() int {
	n := 0
	for b := range o.Finished {
		for _, f := range o.Finished[b] {
			if f {
				n++
			}
		}
	}
	return n
}

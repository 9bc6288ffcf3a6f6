package sim

import (
	"fmt"
	"math"
)

// Depot is the node index of the depot in every instance.
const Depot = 0

// Capacity is the normalized vehicle capacity. Demands are fractions of it.
const Capacity = 1.0

// ProblemBatch holds the static data for B CVRP instances sharing one
// customer count P. Node 0 is the depot; nodes 1..P are customers.
// A ProblemBatch is immutable once built; Environment never writes to it.
type ProblemBatch struct {
	// Distance[b][i][j] is the travel cost from node i to node j in instance b.
	Distance [][][]float64
	// Demand[b][i] is the demand of node i; Demand[b][0] is always 0.
	Demand [][]float64
}

// NewProblemBatch builds a ProblemBatch from per-instance distance matrices
// ([B][P+1][P+1]) and customer-only demands ([B][P]). The depot's zero demand
// is prepended. Inputs are copied so later caller mutation cannot leak in.
// Returns an error wrapping ErrInvalidProblemData when validation fails.
func NewProblemBatch(distance [][][]float64, customerDemand [][]float64) (*ProblemBatch, error) {
	if len(distance) != len(customerDemand) {
		return nil, fmt.Errorf("%w: %d distance matrices but %d demand vectors",
			ErrInvalidProblemData, len(distance), len(customerDemand))
	}
	pb := &ProblemBatch{
		Distance: make([][][]float64, len(distance)),
		Demand:   make([][]float64, len(customerDemand)),
	}
	for b := range distance {
		pb.Distance[b] = make([][]float64, len(distance[b]))
		for i, row := range distance[b] {
			pb.Distance[b][i] = append([]float64(nil), row...)
		}
		pb.Demand[b] = append([]float64{0}, customerDemand[b]...)
	}
	if err := pb.Validate(); err != nil {
		return nil, err
	}
	return pb, nil
}

// Size returns the number of instances B.
func (pb *ProblemBatch) Size() int { return len(pb.Distance) }

// Nodes returns P+1, the node count including the depot.
func (pb *ProblemBatch) Nodes() int {
	if len(pb.Demand) == 0 {
		return 0
	}
	return len(pb.Demand[0])
}

// Customers returns P.
func (pb *ProblemBatch) Customers() int { return pb.Nodes() - 1 }

// Validate checks shapes first, then values. Every failure wraps
// ErrInvalidProblemData and names the offending instance and node.
func (pb *ProblemBatch) Validate() error {
	if pb == nil || len(pb.Distance) == 0 {
		return fmt.Errorf("%w: empty batch", ErrInvalidProblemData)
	}
	if len(pb.Demand) != len(pb.Distance) {
		return fmt.Errorf("%w: %d distance matrices but %d demand vectors",
			ErrInvalidProblemData, len(pb.Distance), len(pb.Demand))
	}
	n := len(pb.Demand[0])
	if n < 2 {
		return fmt.Errorf("%w: need at least one customer, got %d nodes", ErrInvalidProblemData, n)
	}

	// Stage 1: shapes.
	for b := range pb.Distance {
		if len(pb.Demand[b]) != n {
			return fmt.Errorf("%w: instance %d has %d demand entries, want %d",
				ErrInvalidProblemData, b, len(pb.Demand[b]), n)
		}
		if len(pb.Distance[b]) != n {
			return fmt.Errorf("%w: instance %d distance matrix has %d rows, want %d",
				ErrInvalidProblemData, b, len(pb.Distance[b]), n)
		}
		for i, row := range pb.Distance[b] {
			if len(row) != n {
				return fmt.Errorf("%w: instance %d distance row %d has %d columns, want %d",
					ErrInvalidProblemData, b, i, len(row), n)
			}
		}
	}

	// Stage 2: values.
	for b := range pb.Distance {
		if pb.Demand[b][Depot] != 0 {
			return fmt.Errorf("%w: instance %d depot demand is %v, want 0",
				ErrInvalidProblemData, b, pb.Demand[b][Depot])
		}
		for i, d := range pb.Demand[b] {
			if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
				return fmt.Errorf("%w: instance %d node %d has demand %v",
					ErrInvalidProblemData, b, i, d)
			}
			if d > Capacity {
				return fmt.Errorf("%w: instance %d node %d demand %v exceeds capacity %v",
					ErrInvalidProblemData, b, i, d, Capacity)
			}
		}
		for i, row := range pb.Distance[b] {
			for j, v := range row {
				if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
					return fmt.Errorf("%w: instance %d distance[%d][%d] is %v",
						ErrInvalidProblemData, b, i, j, v)
				}
			}
		}
	}
	return nil
}

// Repeat tiles the batch factor times along the instance axis: instance
// a*B+b of the result is instance b of pb. Used for augmented evaluation,
// where each copy is rolled out independently and the best is kept.
// Rows are shared with pb, which is safe since neither side mutates them.
func (pb *ProblemBatch) Repeat(factor int) (*ProblemBatch, error) {
	if factor < 1 {
		return nil, fmt.Errorf("%w: repeat factor must be >= 1, got %d", ErrInvalidProblemData, factor)
	}
	out := &ProblemBatch{
		Distance: make([][][]float64, 0, factor*pb.Size()),
		Demand:   make([][]float64, 0, factor*pb.Size()),
	}
	for a := 0; a < factor; a++ {
		out.Distance = append(out.Distance, pb.Distance...)
		out.Demand = append(out.Demand, pb.Demand...)
	}
	return out, nil
}

// Slice returns the sub-batch of instances [start, end).
func (pb *ProblemBatch) Slice(start, end int) (*ProblemBatch, error) {
	if start < 0 || end > pb.Size() || start >= end {
		return nil, fmt.Errorf("%w: slice [%d, %d) of batch size %d", ErrOutOfRange, start, end, pb.Size())
	}
	return &ProblemBatch{
		Distance: pb.Distance[start:end],
		Demand:   pb.Demand[start:end],
	}, nil
}

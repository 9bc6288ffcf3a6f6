// sim/environment.go
package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// EnvironmentConfig configures an Environment.
type EnvironmentConfig struct {
	Trajectories int // rollouts per instance (M), must be >= 1
	Workers      int // concurrent row partitions for Step; <= 1 runs serially
}

// Environment simulates B CVRP instances with M lock-step trajectories each.
// It owns the dynamic TrajectoryState of every (b, m) cell and publishes a
// feasibility mask after every step.
//
// Thread-safety: Step, Reset and Observe must be serialized by the caller.
// Independent Environment values share nothing and may run concurrently.
type Environment struct {
	trajectories int
	workers      int

	problems  *ProblemBatch
	cells     [][]TrajectoryState // [B][M]
	stepCount int
	done      bool
}

// NewEnvironment validates cfg and returns an Environment awaiting Reset.
func NewEnvironment(cfg EnvironmentConfig) (*Environment, error) {
	if cfg.Trajectories < 1 {
		return nil, fmt.Errorf("trajectories must be >= 1, got %d", cfg.Trajectories)
	}
	return &Environment{
		trajectories: cfg.Trajectories,
		workers:      max(cfg.Workers, 1),
	}, nil
}

// Trajectories returns M.
func (e *Environment) Trajectories() int { return e.trajectories }

// StepCount returns the number of steps taken since the last Reset.
func (e *Environment) StepCount() int { return e.stepCount }

// Done reports whether every trajectory of every instance has finished.
func (e *Environment) Done() bool { return e.done }

// Reset validates problems and discards all prior dynamic state: every cell
// starts with full capacity, an empty path, nothing visited and not finished.
// Repeated calls with the same batch yield identical observations.
func (e *Environment) Reset(problems *ProblemBatch) (*ResetObservation, error) {
	if err := problems.Validate(); err != nil {
		return nil, err
	}
	nodes := problems.Nodes()
	cells := make([][]TrajectoryState, problems.Size())
	for b := range cells {
		cells[b] = make([]TrajectoryState, e.trajectories)
		for m := range cells[b] {
			cells[b][m] = newTrajectoryState(nodes)
		}
	}
	e.problems = problems
	e.cells = cells
	e.stepCount = 0
	e.done = false

	logrus.Debugf("reset: batch=%d trajectories=%d customers=%d",
		problems.Size(), e.trajectories, problems.Customers())

	return &ResetObservation{
		Distance: problems.Distance,
		Demand:   problems.Demand,
	}, nil
}

// Observe returns a snapshot of the current dynamic state. It has no side
// effects and may be called before the first Step, when every node is
// eligible and CurrentNode is NoNode.
func (e *Environment) Observe() (*StepObservation, error) {
	if e.cells == nil {
		return nil, ErrNotReset
	}
	B := len(e.cells)
	obs := &StepObservation{
		StepCount:         e.stepCount,
		RemainingCapacity: make([][]float64, B),
		CurrentNode:       make([][]int, B),
		Mask:              make([][][]bool, B),
		Finished:          make([][]bool, B),
	}
	for b, row := range e.cells {
		obs.RemainingCapacity[b] = make([]float64, len(row))
		obs.CurrentNode[b] = make([]int, len(row))
		obs.Mask[b] = make([][]bool, len(row))
		obs.Finished[b] = make([]bool, len(row))
		for m := range row {
			cell := &row[m]
			obs.RemainingCapacity[b][m] = cell.RemainingCapacity
			obs.CurrentNode[b][m] = cell.CurrentNode
			obs.Mask[b][m] = append([]bool(nil), cell.mask...)
			obs.Finished[b][m] = cell.Finished
		}
	}
	return obs, nil
}

// Step applies one selection per trajectory and returns the new snapshot.
// When every trajectory has finished, done is true and reward[b][m] holds
// the negated cyclic route length of each trajectory; otherwise reward is nil.
//
// selection must be shaped [B][M] with node indices in [0, P]; violations
// return ErrShapeMismatch or ErrOutOfRange and leave the state untouched.
// Selecting a node the last mask excluded is not detected: it corrupts the
// capacity and visitation state of that trajectory.
func (e *Environment) Step(selection [][]int) (*StepObservation, [][]float64, bool, error) {
	if e.cells == nil {
		return nil, nil, false, ErrNotReset
	}
	if err := e.checkSelection(selection); err != nil {
		return nil, nil, false, err
	}

	e.stepCount++
	if err := e.forEachRow(func(b int) {
		demand := e.problems.Demand[b]
		for m := range e.cells[b] {
			e.cells[b][m].advance(selection[b][m], demand)
		}
	}); err != nil {
		return nil, nil, false, err
	}

	done := true
	for b := range e.cells {
		for m := range e.cells[b] {
			if !e.cells[b][m].Finished {
				done = false
			}
		}
	}
	e.done = done

	obs, err := e.Observe()
	if err != nil {
		return nil, nil, false, err
	}
	logrus.Debugf("[step %04d] finished %d/%d", e.stepCount, obs.FinishedCount(), len(e.cells)*e.trajectories)

	if !done {
		return obs, nil, false, nil
	}
	return obs, e.rewards(), true, nil
}

// Paths returns a copy of every trajectory's node sequence, shaped [B][M][steps].
func (e *Environment) Paths() [][][]int {
	out := make([][][]int, len(e.cells))
	for b, row := range e.cells {
		out[b] = make([][]int, len(row))
		for m := range row {
			out[b][m] = append([]int(nil), row[m].Path...)
		}
	}
	return out
}

// TotalDistance returns the cyclic route length of every trajectory so far.
func (e *Environment) TotalDistance() [][]float64 {
	out := make([][]float64, len(e.cells))
	for b, row := range e.cells {
		out[b] = make([]float64, len(row))
		for m := range row {
			out[b][m] = row[m].routeLength(e.problems.Distance[b])
		}
	}
	return out
}

func (e *Environment) rewards() [][]float64 {
	reward := e.TotalDistance()
	for b := range reward {
		for m := range reward[b] {
			reward[b][m] = -reward[b][m]
		}
	}
	return reward
}

func (e *Environment) checkSelection(selection [][]int) error {
	if len(selection) != len(e.cells) {
		return fmt.Errorf("%w: selection has %d rows, want %d", ErrShapeMismatch, len(selection), len(e.cells))
	}
	nodes := e.problems.Nodes()
	for b, row := range selection {
		if len(row) != e.trajectories {
			return fmt.Errorf("%w: selection row %d has %d entries, want %d",
				ErrShapeMismatch, b, len(row), e.trajectories)
		}
		for m, node := range row {
			if node < 0 || node >= nodes {
				return fmt.Errorf("%w: selection[%d][%d] = %d, want [0, %d]",
					ErrOutOfRange, b, m, node, nodes-1)
			}
		}
	}
	return nil
}

// forEachRow runs fn over every instance row. With more than one worker the
// rows are split into contiguous disjoint ranges, one goroutine per range.
func (e *Environment) forEachRow(fn func(b int)) error {
	B := len(e.cells)
	if e.workers <= 1 || B <= 1 {
		for b := 0; b < B; b++ {
			fn(b)
		}
		return nil
	}
	workers := min(e.workers, B)
	chunk := (B + workers - 1) / workers
	var g errgroup.Group
	for lo := 0; lo < B; lo += chunk {
		lo, hi := lo, min(lo+chunk, B)
		g.Go(func() error {
			for b := lo; b < hi; b++ {
				fn(b)
			}
			return nil
		})
	}
	return g.Wait()
}

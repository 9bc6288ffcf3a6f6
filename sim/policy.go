package sim

import (
	"fmt"
	"math/rand"
)

// DecisionPolicy chooses the next node for every trajectory.
// Implementations read the published mask and must only return eligible
// nodes; the Environment trusts them and does not re-check.
type DecisionPolicy interface {
	Select(obs *StepObservation, problems *ProblemBatch) ([][]int, error)
}

// ValidPolicies is the set of recognized decision policy names.
// Shared by IsValidPolicy, RunBundle.Validate and NewDecisionPolicy.
var ValidPolicies = map[string]bool{"": true, "multi-start": true, "greedy": true, "random": true}

// IsValidPolicy returns true if name is a recognized decision policy.
func IsValidPolicy(name string) bool {
	return ValidPolicies[name]
}

// PolicyNames returns the non-empty policy names, for CLI help text.
func PolicyNames() []string {
	return []string{"multi-start", "greedy", "random"}
}

// NewDecisionPolicy creates a decision policy by name.
// Empty string defaults to multi-start.
// rng is required by "random"; other policies ignore it.
// Panics on unrecognized names.
func NewDecisionPolicy(name string, rng *PartitionedRNG) DecisionPolicy {
	if !IsValidPolicy(name) {
		panic(fmt.Sprintf("unknown decision policy %q", name))
	}
	switch name {
	case "", "multi-start":
		return &MultiStart{}
	case "greedy":
		return &NearestNeighbor{}
	case "random":
		if rng == nil {
			panic("random policy requires a PartitionedRNG")
		}
		return &UniformRandom{rng: rng.ForSubsystem(SubsystemPolicy)}
	default:
		panic(fmt.Sprintf("unhandled decision policy %q", name))
	}
}

// NearestNeighbor sends each vehicle to the closest eligible customer and
// returns to the depot only when no customer is eligible.
// Ties are broken by lowest node index.
type NearestNeighbor struct{}

// Select implements DecisionPolicy for NearestNeighbor.
func (nn *NearestNeighbor) Select(obs *StepObservation, problems *ProblemBatch) ([][]int, error) {
	if err := checkObservation(obs, problems); err != nil {
		return nil, err
	}
	return selectEach(obs, func(b, m int) int {
		return nearestCustomer(obs, problems, b, m)
	}), nil
}

func nearestCustomer(obs *StepObservation, problems *ProblemBatch, b, m int) int {
	from := obs.CurrentNode[b][m]
	if from == NoNode {
		from = Depot
	}
	dist := problems.Distance[b][from]
	best := -1
	for i := 1; i < len(dist); i++ {
		if obs.Mask[b][m][i] {
			continue
		}
		if best < 0 || dist[i] < dist[best] {
			best = i
		}
	}
	if best < 0 {
		return Depot
	}
	return best
}

// MultiStart forces diverse starts across trajectories: the first step
// selects the depot, the second sends trajectory m to customer (m mod P)+1,
// and every later step follows NearestNeighbor.
type MultiStart struct{}

// Select implements DecisionPolicy for MultiStart.
func (ms *MultiStart) Select(obs *StepObservation, problems *ProblemBatch) ([][]int, error) {
	if err := checkObservation(obs, problems); err != nil {
		return nil, err
	}
	P := problems.Customers()
	return selectEach(obs, func(b, m int) int {
		switch obs.StepCount {
		case 0:
			return Depot
		case 1:
			if start := m%P + 1; obs.Eligible(b, m, start) {
				return start
			}
		}
		return nearestCustomer(obs, problems, b, m)
	}), nil
}

// UniformRandom picks uniformly among all eligible nodes, the depot included.
type UniformRandom struct {
	rng *rand.Rand
}

// Select implements DecisionPolicy for UniformRandom.
func (ur *UniformRandom) Select(obs *StepObservation, problems *ProblemBatch) ([][]int, error) {
	if err := checkObservation(obs, problems); err != nil {
		return nil, err
	}
	candidates := make([]int, 0, problems.Nodes())
	return selectEach(obs, func(b, m int) int {
		candidates = candidates[:0]
		for i, excluded := range obs.Mask[b][m] {
			if !excluded {
				candidates = append(candidates, i)
			}
		}
		if len(candidates) == 0 {
			return Depot
		}
		return candidates[ur.rng.Intn(len(candidates))]
	}), nil
}

func selectEach(obs *StepObservation, pick func(b, m int) int) [][]int {
	out := make([][]int, obs.Batch())
	for b := range out {
		out[b] = make([]int, len(obs.Finished[b]))
		for m := range out[b] {
			out[b][m] = pick(b, m)
		}
	}
	return out
}

func checkObservation(obs *StepObservation, problems *ProblemBatch) error {
	if obs == nil || problems == nil {
		return fmt.Errorf("%w: nil observation or problem batch", ErrShapeMismatch)
	}
	if obs.Batch() != problems.Size() {
		return fmt.Errorf("%w: observation has %d instances, problem batch has %d",
			ErrShapeMismatch, obs.Batch(), problems.Size())
	}
	return nil
}

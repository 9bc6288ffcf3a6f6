package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/routing-sim/cvrp-sim/sim/internal/testutil"
)

// lineBatch builds a validated batch of line instances (depot at x=0,
// customer i at x=i) with the given customer demands.
func lineBatch(t *testing.T, batch int, demand ...float64) *ProblemBatch {
	t.Helper()
	distance, demands := testutil.LineProblem(batch, demand)
	pb, err := NewProblemBatch(distance, demands)
	require.NoError(t, err)
	return pb
}

// newResetEnv returns an Environment with m trajectories, reset on pb.
func newResetEnv(t *testing.T, pb *ProblemBatch, m int) *Environment {
	t.Helper()
	env, err := NewEnvironment(EnvironmentConfig{Trajectories: m})
	require.NoError(t, err)
	_, err = env.Reset(pb)
	require.NoError(t, err)
	return env
}

// stepAll applies one selection per trajectory row-wise: sel[m] is the
// node for trajectory m in every instance.
func stepAll(t *testing.T, env *Environment, batch int, sel ...int) (*StepObservation, [][]float64, bool) {
	t.Helper()
	selection := make([][]int, batch)
	for b := range selection {
		selection[b] = append([]int(nil), sel...)
	}
	obs, reward, done, err := env.Step(selection)
	require.NoError(t, err)
	return obs, reward, done
}

// fixedPolicy replays a scripted per-step node for every trajectory.
type fixedPolicy struct {
	script []int
}

func (fp *fixedPolicy) Select(obs *StepObservation, _ *ProblemBatch) ([][]int, error) {
	node := Depot
	if obs.StepCount < len(fp.script) {
		node = fp.script[obs.StepCount]
	}
	out := make([][]int, obs.Batch())
	for b := range out {
		out[b] = make([]int, obs.Trajectories())
		for m := range out[b] {
			out[b][m] = node
		}
	}
	return out, nil
}

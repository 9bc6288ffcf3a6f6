package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDecisionPolicy_UnknownName_Panics(t *testing.T) {
	assert.Panics(t, func() { NewDecisionPolicy("pomo", nil) })
}

func TestNewDecisionPolicy_RandomWithoutRNG_Panics(t *testing.T) {
	assert.Panics(t, func() { NewDecisionPolicy("random", nil) })
}

func TestNewDecisionPolicy_EmptyDefaultsToMultiStart(t *testing.T) {
	_, ok := NewDecisionPolicy("", nil).(*MultiStart)
	assert.True(t, ok)
}

func TestIsValidPolicy(t *testing.T) {
	for _, name := range PolicyNames() {
		assert.True(t, IsValidPolicy(name), name)
	}
	assert.False(t, IsValidPolicy("argmax"))
}

func TestNearestNeighbor_PicksClosestEligibleCustomer(t *testing.T) {
	// GIVEN a vehicle at customer 2 with customer 1 already served
	pb := lineBatch(t, 1, 0.1, 0.1, 0.1, 0.1)
	env := newResetEnv(t, pb, 1)
	stepAll(t, env, 1, 1)
	obs, _, _ := stepAll(t, env, 1, 2)

	// WHEN the nearest neighbor selects
	sel, err := (&NearestNeighbor{}).Select(obs, pb)
	require.NoError(t, err)

	// THEN customer 3 (distance 1) is chosen over the depot (distance 2)
	assert.Equal(t, [][]int{{3}}, sel)
}

func TestNearestNeighbor_NoEligibleCustomer_ReturnsDepot(t *testing.T) {
	// GIVEN capacity too low for the remaining customer
	pb := lineBatch(t, 1, 0.6, 0.6)
	env := newResetEnv(t, pb, 1)
	obs, _, _ := stepAll(t, env, 1, 1)
	require.False(t, obs.Eligible(0, 0, 2))

	sel, err := (&NearestNeighbor{}).Select(obs, pb)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{Depot}}, sel)
}

func TestMultiStart_DistinctFirstCustomers(t *testing.T) {
	// GIVEN 5 trajectories over 3 customers
	pb := lineBatch(t, 2, 0.2, 0.2, 0.2)
	env := newResetEnv(t, pb, 5)
	policy := &MultiStart{}

	// WHEN the first step is selected
	obs, err := env.Observe()
	require.NoError(t, err)
	first, err := policy.Select(obs, pb)
	require.NoError(t, err)

	// THEN every trajectory starts at the depot
	assert.Equal(t, [][]int{{0, 0, 0, 0, 0}, {0, 0, 0, 0, 0}}, first)

	// WHEN the second step is selected
	obs, _, _, err = env.Step(first)
	require.NoError(t, err)
	second, err := policy.Select(obs, pb)
	require.NoError(t, err)

	// THEN trajectory m goes to customer (m mod P) + 1
	assert.Equal(t, [][]int{{1, 2, 3, 1, 2}, {1, 2, 3, 1, 2}}, second)
}

func TestUniformRandom_OnlyEligibleNodes(t *testing.T) {
	pb := lineBatch(t, 1, 0.5, 0.6, 0.1)
	env := newResetEnv(t, pb, 8)
	policy := NewDecisionPolicy("random", NewPartitionedRNG(NewRunKey(5)))

	stepAll(t, env, 1, 1, 1, 1, 1, 1, 1, 1, 1)
	obs, err := env.Observe()
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		sel, err := policy.Select(obs, pb)
		require.NoError(t, err)
		for m, node := range sel[0] {
			assert.True(t, obs.Eligible(0, m, node), "trajectory %d picked excluded node %d", m, node)
		}
	}
}

func TestPolicy_MismatchedObservation_ErrShapeMismatch(t *testing.T) {
	pb := lineBatch(t, 2, 0.5)
	obs := &StepObservation{Finished: [][]bool{{false}}}
	_, err := (&NearestNeighbor{}).Select(obs, pb)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

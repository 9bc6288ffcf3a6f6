package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exportMetrics(t *testing.T, m *Metrics) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cvrp.prom")
	require.NoError(t, m.WriteTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestMetrics_ObserveRollout_UpdatesCollectors(t *testing.T) {
	// GIVEN fresh metrics
	m := NewMetrics()

	// WHEN a rollout of 7 steps over two instances is observed
	m.ObserveRollout(7, [][]float64{{-4, -3}, {-6, -5}})

	// THEN counters, histogram and best-distance gauge reflect it
	out := exportMetrics(t, m)
	assert.Contains(t, out, "cvrp_rollouts_total 1")
	assert.Contains(t, out, "cvrp_steps_total 7")
	assert.Contains(t, out, "cvrp_best_distance 4")
	assert.Contains(t, out, "cvrp_trajectory_distance_count 4")
	assert.Contains(t, out, "cvrp_trajectory_distance_sum 18")
}

func TestMetrics_AccumulateAcrossRollouts(t *testing.T) {
	m := NewMetrics()
	m.ObserveRollout(5, [][]float64{{-10}})
	m.ObserveRollout(3, [][]float64{{-2}})

	out := exportMetrics(t, m)
	assert.Contains(t, out, "cvrp_rollouts_total 2")
	assert.Contains(t, out, "cvrp_steps_total 8")
	// The gauge reflects the most recent rollout only.
	assert.Contains(t, out, "cvrp_best_distance 2")
}

func TestMetrics_NilIsNoOp(t *testing.T) {
	var m *Metrics
	m.ObserveRollout(3, [][]float64{{-1}})
	assert.NoError(t, m.WriteTextfile(filepath.Join(t.TempDir(), "unused.prom")))
}

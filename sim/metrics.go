// Tracks rollout-wide counters and route-length distributions for export
// in Prometheus text format.

package sim

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds Prometheus collectors on a dedicated registry so that
// independent runs in one process never share counters.
// All methods are safe on a nil *Metrics (no-op).
type Metrics struct {
	Registry *prometheus.Registry

	// Rollouts counts completed rollouts.
	Rollouts prometheus.Counter
	// Steps counts environment steps across all rollouts.
	Steps prometheus.Counter
	// TrajectoryDistance records the route length of every trajectory.
	TrajectoryDistance prometheus.Histogram
	// BestDistance is the mean over instances of the best trajectory's
	// route length in the most recent rollout.
	BestDistance prometheus.Gauge
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Rollouts: prometheus.NewCounter(
			prometheus.CounterOpts{Name: "cvrp_rollouts_total", Help: "Completed rollouts."},
		),
		Steps: prometheus.NewCounter(
			prometheus.CounterOpts{Name: "cvrp_steps_total", Help: "Environment steps across all rollouts."},
		),
		TrajectoryDistance: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "cvrp_trajectory_distance",
				Help:    "Cyclic route length per trajectory.",
				Buckets: prometheus.ExponentialBuckets(0.5, 2, 12),
			},
		),
		BestDistance: prometheus.NewGauge(
			prometheus.GaugeOpts{Name: "cvrp_best_distance", Help: "Mean best route length per instance, last rollout."},
		),
	}
	m.Registry.MustRegister(m.Rollouts, m.Steps, m.TrajectoryDistance, m.BestDistance)
	return m
}

// ObserveRollout records one finished rollout given its reward grid.
func (m *Metrics) ObserveRollout(steps int, reward [][]float64) {
	if m == nil {
		return
	}
	m.Rollouts.Inc()
	m.Steps.Add(float64(steps))
	for b := range reward {
		for _, r := range reward[b] {
			m.TrajectoryDistance.Observe(-r)
		}
	}
	best := BestReward(reward)
	if len(best) == 0 {
		return
	}
	sum := 0.0
	for _, r := range best {
		sum -= r
	}
	m.BestDistance.Set(sum / float64(len(best)))
}

// WriteTextfile writes the registry to path in Prometheus text format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.Registry)
}

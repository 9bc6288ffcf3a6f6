package instance

import (
	"fmt"
	"math/rand"

	"github.com/routing-sim/cvrp-sim/sim"
)

// GeneratorConfig parameterizes random non-Euclidean instances.
// Zero fields take the defaults applied by WithDefaults.
type GeneratorConfig struct {
	Customers int `yaml:"customers" json:"customers"`

	// Raw distances are integers in [IntMin, IntMax) divided by Scaler.
	IntMin int     `yaml:"int_min" json:"int_min"`
	IntMax int     `yaml:"int_max" json:"int_max"`
	Scaler float64 `yaml:"scaler" json:"scaler"`

	// Raw demands are integers in [DemandMin, DemandMax] divided by Capacity.
	DemandMin int `yaml:"demand_min" json:"demand_min"`
	DemandMax int `yaml:"demand_max" json:"demand_max"`
	Capacity  int `yaml:"capacity" json:"capacity"`
}

// DefaultCapacity returns the conventional vehicle capacity in demand
// units for a customer count: 30 up to 20 customers, 40 up to 50,
// 50 beyond.
func DefaultCapacity(customers int) int {
	switch {
	case customers <= 20:
		return 30
	case customers <= 50:
		return 40
	default:
		return 50
	}
}

// WithDefaults returns a copy of c with zero fields filled in.
func (c GeneratorConfig) WithDefaults() GeneratorConfig {
	if c.IntMax == 0 {
		c.IntMax = 100
	}
	if c.Scaler == 0 {
		c.Scaler = float64(c.IntMax)
	}
	if c.DemandMin == 0 {
		c.DemandMin = 1
	}
	if c.DemandMax == 0 {
		c.DemandMax = 9
	}
	if c.Capacity == 0 {
		c.Capacity = DefaultCapacity(c.Customers)
	}
	return c
}

// Validate checks that every instance the config can produce is feasible.
func (c GeneratorConfig) Validate() error {
	if c.Customers < 1 {
		return fmt.Errorf("customers must be >= 1, got %d", c.Customers)
	}
	if c.IntMin < 0 || c.IntMax <= c.IntMin {
		return fmt.Errorf("distance range [%d, %d) is empty or negative", c.IntMin, c.IntMax)
	}
	if c.Scaler <= 0 {
		return fmt.Errorf("scaler must be positive, got %f", c.Scaler)
	}
	if c.DemandMin < 0 || c.DemandMax < c.DemandMin {
		return fmt.Errorf("demand range [%d, %d] is empty or negative", c.DemandMin, c.DemandMax)
	}
	if c.Capacity <= 0 {
		return fmt.Errorf("capacity must be positive, got %d", c.Capacity)
	}
	if c.DemandMax > c.Capacity {
		return fmt.Errorf("demand_max %d exceeds capacity %d", c.DemandMax, c.Capacity)
	}
	return nil
}

// Generate draws batch random instances. Distances are independent
// integers in [IntMin, IntMax) scaled by 1/Scaler with a zero diagonal, so
// matrices are asymmetric and need not satisfy the triangle inequality.
// Demands are integers in [DemandMin, DemandMax] scaled by 1/Capacity.
func Generate(rng *rand.Rand, batch int, cfg GeneratorConfig) (*sim.ProblemBatch, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("generator config: %w", err)
	}
	if batch < 1 {
		return nil, fmt.Errorf("batch must be >= 1, got %d", batch)
	}
	nodes := cfg.Customers + 1
	span := cfg.IntMax - cfg.IntMin
	demandSpan := cfg.DemandMax - cfg.DemandMin + 1

	distance := make([][][]float64, batch)
	demand := make([][]float64, batch)
	for b := 0; b < batch; b++ {
		distance[b] = make([][]float64, nodes)
		for i := range distance[b] {
			row := make([]float64, nodes)
			for j := range row {
				if i == j {
					continue
				}
				row[j] = float64(cfg.IntMin+rng.Intn(span)) / cfg.Scaler
			}
			distance[b][i] = row
		}
		demand[b] = make([]float64, cfg.Customers)
		for i := range demand[b] {
			demand[b][i] = float64(cfg.DemandMin+rng.Intn(demandSpan)) / float64(cfg.Capacity)
		}
	}
	return sim.NewProblemBatch(distance, demand)
}

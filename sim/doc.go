// Package sim provides the batched CVRP simulation environment.
//
// # Reading Guide
//
// Start with these files to understand the environment:
//   - problem.go: ProblemBatch (distance matrices, demands) and its validation
//   - state.go: TrajectoryState and the per-step update rule
//   - environment.go: Reset, Observe, Step, and the reward computation
//
// # Architecture
//
// An Environment holds B instances with M trajectories each. Every call to
// Step advances all B×M cells in lock-step; cells never read each other's
// state, so rows may be stepped concurrently (EnvironmentConfig.Workers).
// A trajectory that has served every customer keeps stepping on the depot
// until the whole batch is done.
//
// Decision-making is external. The DecisionPolicy interface and the
// reference policies in policy.go exist to drive Rollout end to end:
//   - MultiStart: depot, then one distinct first customer per trajectory, then nearest neighbor
//   - NearestNeighbor: closest eligible customer, depot when none is eligible
//   - UniformRandom: uniform over eligible nodes
//
// Sub-packages:
//   - sim/instance/: problem file I/O and random instance generation
//   - sim/trace/: per-step decision trace recording
package sim

package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/routing-sim/cvrp-sim/sim/trace"
)

// RolloutOptions tunes a single Rollout. The zero value is usable.
type RolloutOptions struct {
	// MaxSteps bounds the episode. <= 0 means 4*(P+1), which a policy that
	// respects the mask cannot exceed: each customer costs at most one
	// customer step and one depot step.
	MaxSteps int
	Trace    *trace.RolloutTrace // optional
	Metrics  *Metrics            // optional
}

// RolloutResult is the outcome of a finished rollout.
type RolloutResult struct {
	Reward [][]float64 // [B][M] negated route lengths
	Steps  int
	Paths  [][][]int // [B][M][Steps]
}

// Rollout runs policy against env on problems until every trajectory has
// finished: Reset, then Observe/Select/Step until done.
func Rollout(env *Environment, problems *ProblemBatch, policy DecisionPolicy, opts RolloutOptions) (*RolloutResult, error) {
	if _, err := env.Reset(problems); err != nil {
		return nil, err
	}
	maxSteps := opts.MaxSteps
	if maxSteps <= 0 {
		maxSteps = 4 * problems.Nodes()
	}

	obs, err := env.Observe()
	if err != nil {
		return nil, err
	}
	for {
		if env.StepCount() >= maxSteps {
			return nil, fmt.Errorf("%w: %d steps, %d/%d trajectories finished",
				ErrStepLimit, env.StepCount(), obs.FinishedCount(), problems.Size()*env.Trajectories())
		}
		selected, err := policy.Select(obs, problems)
		if err != nil {
			return nil, fmt.Errorf("policy select at step %d: %w", env.StepCount(), err)
		}
		next, reward, done, err := env.Step(selected)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", env.StepCount()+1, err)
		}
		if opts.Trace != nil {
			opts.Trace.RecordStep(trace.StepRecord{
				Step:              next.StepCount,
				Selected:          selected,
				RemainingCapacity: next.RemainingCapacity,
				FinishedCount:     next.FinishedCount(),
			})
		}
		obs = next
		if done {
			opts.Metrics.ObserveRollout(env.StepCount(), reward)
			logrus.Debugf("rollout done after %d steps", env.StepCount())
			return &RolloutResult{
				Reward: reward,
				Steps:  env.StepCount(),
				Paths:  env.Paths(),
			}, nil
		}
	}
}

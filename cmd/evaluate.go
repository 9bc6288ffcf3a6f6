package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	sim "github.com/routing-sim/cvrp-sim/sim"
	"github.com/routing-sim/cvrp-sim/sim/trace"
)

// EvalConfig holds the resolved parameters of an evaluation run.
type EvalConfig struct {
	RunID        string
	Seed         int64
	Policy       string
	Trajectories int // 0 = one trajectory per customer
	Workers      int
	BatchSize    int
	AugFactor    int
	MaxSteps     int
	TraceLevel   trace.TraceLevel
}

// EvalResult summarizes an evaluation run. Scores are mean best route
// lengths per instance (lower is better).
type EvalResult struct {
	RunID       string  `json:"run_id"`
	Policy      string  `json:"policy"`
	Episodes    int     `json:"episodes"`
	AugFactor   int     `json:"aug_factor"`
	NoAugScore  float64 `json:"no_aug_score"`
	AugScore    float64 `json:"aug_score"`
	TotalSteps  int     `json:"total_steps"`
	WallSeconds float64 `json:"wall_seconds"`

	// Distances summarizes the best un-augmented route length per instance.
	Distances sim.DistanceSummary `json:"distances"`

	Traces []*trace.RolloutTrace `json:"-"`
}

// evaluate rolls the configured policy out over problems in chunks of
// BatchSize instances, each chunk repeated AugFactor times, and averages
// the per-chunk scores weighted by chunk size.
func evaluate(problems *sim.ProblemBatch, cfg EvalConfig, metrics *sim.Metrics) (*EvalResult, error) {
	trajectories := cfg.Trajectories
	if trajectories == 0 {
		trajectories = problems.Customers()
	}
	augFactor := max(cfg.AugFactor, 1)
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = problems.Size()
	}

	env, err := sim.NewEnvironment(sim.EnvironmentConfig{Trajectories: trajectories, Workers: cfg.Workers})
	if err != nil {
		return nil, err
	}
	policy := sim.NewDecisionPolicy(cfg.Policy, sim.NewPartitionedRNG(sim.NewRunKey(cfg.Seed)))

	var scoreAM, augScoreAM sim.AverageMeter
	result := &EvalResult{RunID: cfg.RunID, Policy: cfg.Policy, AugFactor: augFactor}
	start := time.Now()
	total := problems.Size()
	distances := make([]float64, 0, total)

	for episode := 0; episode < total; {
		size := min(batchSize, total-episode)
		chunk, err := problems.Slice(episode, episode+size)
		if err != nil {
			return nil, err
		}
		augmented, err := chunk.Repeat(augFactor)
		if err != nil {
			return nil, err
		}

		opts := sim.RolloutOptions{MaxSteps: cfg.MaxSteps, Metrics: metrics}
		if cfg.TraceLevel == trace.TraceLevelSteps {
			opts.Trace = trace.NewRolloutTrace(cfg.RunID, trace.TraceConfig{Level: cfg.TraceLevel})
			result.Traces = append(result.Traces, opts.Trace)
		}
		res, err := sim.Rollout(env, augmented, policy, opts)
		if err != nil {
			return nil, fmt.Errorf("instances [%d, %d): %w", episode, episode+size, err)
		}
		noAug, aug, err := sim.AugmentedScore(res.Reward, augFactor)
		if err != nil {
			return nil, err
		}
		scoreAM.Update(noAug, size)
		augScoreAM.Update(aug, size)
		distances = append(distances, sim.BestDistances(res.Reward[:size])...)
		result.TotalSteps += res.Steps
		episode += size

		elapsed := time.Since(start)
		remaining := time.Duration(float64(elapsed) * float64(total-episode) / float64(episode))
		logrus.Infof("episode %d/%d, elapsed[%s], remain[%s], score:%.3f, aug_score:%.3f",
			episode, total, elapsed.Round(time.Millisecond), remaining.Round(time.Millisecond), noAug, aug)
	}

	result.Episodes = scoreAM.Count()
	result.NoAugScore = scoreAM.Avg()
	result.AugScore = augScoreAM.Avg()
	result.Distances = sim.SummarizeDistances(distances)
	result.WallSeconds = time.Since(start).Seconds()
	return result, nil
}

// printResult writes the human-readable header and the JSON summary.
func printResult(w io.Writer, res *EvalResult) error {
	fmt.Fprintln(w, "=== CVRP Evaluation ===")
	fmt.Fprintf(w, "Policy        : %s\n", res.Policy)
	fmt.Fprintf(w, "Episodes      : %d\n", res.Episodes)
	fmt.Fprintf(w, "No-aug score  : %.4f\n", res.NoAugScore)
	fmt.Fprintf(w, "Aug score     : %.4f (x%d)\n", res.AugScore, res.AugFactor)
	fmt.Fprintf(w, "Distance p50  : %.4f (p90 %.4f)\n", res.Distances.P50, res.Distances.P90)
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// printTraceSummaries writes one line per recorded rollout trace.
func printTraceSummaries(w io.Writer, traces []*trace.RolloutTrace) {
	for i, rt := range traces {
		s := trace.Summarize(rt)
		fmt.Fprintf(w, "trace[%d] steps=%d depot_visits=%d customer_visits=%d first_finished=%d\n",
			i, s.TotalSteps, s.DepotVisits, s.CustomerVisits, s.FirstFinished)
	}
}

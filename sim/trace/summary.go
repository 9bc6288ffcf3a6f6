package trace

// TraceSummary aggregates statistics from a RolloutTrace.
type TraceSummary struct {
	TotalSteps     int
	DepotVisits    int // selections of node 0 across all trajectories
	CustomerVisits int
	FinishedByStep []int // FinishedCount after each recorded step
	FirstFinished  int   // first step with any finished trajectory; 0 if none
}

// Summarize computes aggregate statistics from a RolloutTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(rt *RolloutTrace) *TraceSummary {
	summary := &TraceSummary{
		FinishedByStep: make([]int, 0),
	}
	if rt == nil {
		return summary
	}

	summary.TotalSteps = len(rt.Steps)
	for _, rec := range rt.Steps {
		for _, row := range rec.Selected {
			for _, node := range row {
				if node == 0 {
					summary.DepotVisits++
				} else {
					summary.CustomerVisits++
				}
			}
		}
		summary.FinishedByStep = append(summary.FinishedByStep, rec.FinishedCount)
		if summary.FirstFinished == 0 && rec.FinishedCount > 0 {
			summary.FirstFinished = rec.Step
		}
	}
	return summary
}

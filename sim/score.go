package sim

import (
	"fmt"
	"math"
)

// BestReward returns, per instance, the highest reward across trajectories
// (the shortest route, since rewards are negated distances).
func BestReward(reward [][]float64) []float64 {
	best := make([]float64, len(reward))
	for b, row := range reward {
		best[b] = math.Inf(-1)
		for _, r := range row {
			best[b] = max(best[b], r)
		}
	}
	return best
}

// AugmentedScore reduces a reward grid produced from a batch repeated
// augFactor times (see ProblemBatch.Repeat). Rows are read as
// [augFactor][B][M]. noAug is the mean best distance over the first copy;
// aug is the mean over instances of the best distance across all copies.
// Both are positive distances.
func AugmentedScore(reward [][]float64, augFactor int) (noAug, aug float64, err error) {
	if augFactor < 1 {
		return 0, 0, fmt.Errorf("%w: augmentation factor must be >= 1, got %d", ErrOutOfRange, augFactor)
	}
	if len(reward) == 0 || len(reward)%augFactor != 0 {
		return 0, 0, fmt.Errorf("%w: %d reward rows not divisible by augmentation factor %d",
			ErrShapeMismatch, len(reward), augFactor)
	}
	B := len(reward) / augFactor
	best := BestReward(reward)

	for b := 0; b < B; b++ {
		noAug -= best[b]
		bestAug := best[b]
		for a := 1; a < augFactor; a++ {
			bestAug = max(bestAug, best[a*B+b])
		}
		aug -= bestAug
	}
	return noAug / float64(B), aug / float64(B), nil
}

// AverageMeter keeps a count-weighted running mean.
type AverageMeter struct {
	sum   float64
	count int
}

// Update adds val observed over n samples.
func (am *AverageMeter) Update(val float64, n int) {
	am.sum += val * float64(n)
	am.count += n
}

// Avg returns the weighted mean, or 0 when nothing was recorded.
func (am *AverageMeter) Avg() float64 {
	if am.count == 0 {
		return 0
	}
	return am.sum / float64(am.count)
}

// Count returns the total number of samples recorded.
func (am *AverageMeter) Count() int { return am.count }

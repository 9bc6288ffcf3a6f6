package sim

import (
	"math"
	"slices"
)

// IntOrFloat64 constrains the numeric inputs of the stats helpers.
type IntOrFloat64 interface {
	int | int64 | float64
}

// CalculatePercentile returns the p-th percentile of data using linear
// interpolation between closest ranks. data must be sorted ascending.
// Returns 0 for empty input.
func CalculatePercentile[T IntOrFloat64](data []T, p float64) float64 {
	n := len(data)
	if n == 0 {
		return 0
	}
	rank := p / 100.0 * float64(n-1)
	lowerIdx := int(math.Floor(rank))
	upperIdx := int(math.Ceil(rank))
	if upperIdx >= n {
		return float64(data[n-1])
	}
	if lowerIdx == upperIdx {
		return float64(data[lowerIdx])
	}
	lowerVal := float64(data[lowerIdx])
	upperVal := float64(data[upperIdx])
	return lowerVal + (upperVal-lowerVal)*(rank-float64(lowerIdx))
}

// CalculateMean returns the arithmetic mean of numbers, or 0 when empty.
func CalculateMean[T IntOrFloat64](numbers []T) float64 {
	if len(numbers) == 0 {
		return 0
	}
	sum := 0.0
	for _, number := range numbers {
		sum += float64(number)
	}
	return sum / float64(len(numbers))
}

// DistanceSummary describes the distribution of per-instance route lengths.
type DistanceSummary struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Min   float64 `json:"min"`
	P50   float64 `json:"p50"`
	P90   float64 `json:"p90"`
	Max   float64 `json:"max"`
}

// SummarizeDistances computes a DistanceSummary. The input is not modified.
func SummarizeDistances(distances []float64) DistanceSummary {
	if len(distances) == 0 {
		return DistanceSummary{}
	}
	sorted := slices.Clone(distances)
	slices.Sort(sorted)
	return DistanceSummary{
		Count: len(sorted),
		Mean:  CalculateMean(sorted),
		Min:   sorted[0],
		P50:   CalculatePercentile(sorted, 50),
		P90:   CalculatePercentile(sorted, 90),
		Max:   sorted[len(sorted)-1],
	}
}

// BestDistances negates BestReward: the shortest route length per instance.
func BestDistances(reward [][]float64) []float64 {
	best := BestReward(reward)
	for i := range best {
		best[i] = -best[i]
	}
	return best
}

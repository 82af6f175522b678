package analytics

import "github.com/montanaflynn/stats"

// Round2 rounds a value to 2 decimal places for display.
func Round2(v float64) float64 {
	r, _ := stats.Round(v, 2)
	return r
}

// summarize computes the rounded five-number summary of a non-empty sample
// series. Sample standard deviation needs at least two observations; with a
// single sample it is reported as 0.
func summarize(samples []float64) (mean, median, stdDev, min, max float64) {
	mean, _ = stats.Mean(samples)
	median, _ = stats.Median(samples)
	if len(samples) > 1 {
		stdDev, _ = stats.StandardDeviationSample(samples)
	}
	min, _ = stats.Min(samples)
	max, _ = stats.Max(samples)
	return Round2(mean), Round2(median), Round2(stdDev), Round2(min), Round2(max)
}

// Package stats computes the descriptive statistics shown under the chart.
package stats

import (
	"math"
	"sort"
)

// Summary holds descriptive statistics over a numeric sample. Higher
// moments that need more observations than the sample has are nil:
// StdDev and Variance need n >= 2, Skewness n >= 3, Kurtosis n >= 4.
// Skewness and Kurtosis are also nil for constant samples.
type Summary struct {
	Count    int
	Min      float64
	Max      float64
	Mean     float64
	Median   float64
	StdDev   *float64
	Variance *float64
	Skewness *float64
	Kurtosis *float64
}

// FloatValues collects the non-null values of a nullable column.
func FloatValues(vals []*float64) []float64 {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if v != nil {
			out = append(out, *v)
		}
	}
	return out
}

// Describe computes the summary of vals. A zero-count Summary means the
// sample was empty; callers render the empty state rather than numbers.
func Describe(vals []float64) Summary {
	n := len(vals)
	if n == 0 {
		return Summary{}
	}

	sorted := make([]float64, n)
	copy(sorted, vals)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	mean := sum / float64(n)

	s := Summary{
		Count:  n,
		Min:    sorted[0],
		Max:    sorted[n-1],
		Mean:   mean,
		Median: median(sorted),
	}

	if n < 2 {
		return s
	}

	// Central moments
	var m2, m3, m4 float64
	for _, v := range vals {
		d := v - mean
		m2 += d * d
		m3 += d * d * d
		m4 += d * d * d * d
	}
	fn := float64(n)
	m2 /= fn
	m3 /= fn
	m4 /= fn

	variance := m2 * fn / (fn - 1)
	stddev := math.Sqrt(variance)
	s.Variance = &variance
	s.StdDev = &stddev

	if n >= 3 && m2 > 0 {
		// Adjusted Fisher-Pearson standardized moment coefficient
		g1 := m3 / math.Pow(m2, 1.5)
		skew := g1 * math.Sqrt(fn*(fn-1)) / (fn - 2)
		s.Skewness = &skew
	}

	if n >= 4 && m2 > 0 {
		// Sample excess kurtosis with bias correction
		g2 := m4/(m2*m2) - 3
		kurt := ((fn+1)*g2 + 6) * (fn - 1) / ((fn - 2) * (fn - 3))
		s.Kurtosis = &kurt
	}

	return s
}

// median expects sorted input.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

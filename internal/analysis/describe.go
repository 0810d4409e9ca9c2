package analysis

import (
	"math"
	"sort"

	"fredscope/internal/models"
)

// Describe computes a Stats record per series, in table order. Series
// with fewer than two non-missing observations keep their derived
// fields nil instead of failing.
func Describe(table *models.SeriesTable) []models.Stats {
	stats := make([]models.Stats, 0, table.Len())
	for _, name := range table.Names() {
		s, _ := table.Get(name)
		stats = append(stats, describeSeries(name, s))
	}
	return stats
}

func describeSeries(name string, s models.Series) models.Stats {
	values := s.Values()
	st := models.Stats{Name: name, Count: len(values)}
	if len(values) < 2 {
		return st
	}

	st.Mean = models.Float(mean(values))
	st.Median = models.Float(median(values))
	st.StdDev = models.Float(stdDev(values))
	lo, hi := minMax(values)
	st.Min = models.Float(lo)
	st.Max = models.Float(hi)
	st.Latest = models.Float(values[len(values)-1])

	first, last := values[0], values[len(values)-1]
	if first != 0 {
		st.Change = models.Float((last - first) / first * 100)
	}
	return st
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// stdDev is the sample standard deviation (n−1), the volatility figure
// in reports.
func stdDev(values []float64) float64 {
	m := mean(values)
	sumSq := 0.0
	for _, v := range values {
		diff := v - m
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(len(values)-1))
}

func minMax(values []float64) (float64, float64) {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

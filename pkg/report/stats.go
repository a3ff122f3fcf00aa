package report

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Correlation returns the Pearson correlation of x and y, or false when it
// is undefined: fewer than two points, mismatched lengths or a constant series.
func Correlation(x, y []float64) (float64, bool) {
	if len(x) < 2 || len(x) != len(y) {
		return 0, false
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, false
	}
	return r, true
}

// Normalize divides a series by its maximum so that the peak reads 1. A
// series that is empty or never positive is returned as zeros.
func Normalize(series []float64) []float64 {
	out := make([]float64, len(series))
	if len(series) == 0 {
		return out
	}
	peak := floats.Max(series)
	if peak <= 0 {
		return out
	}
	copy(out, series)
	floats.Scale(1/peak, out)
	return out
}

// RelativeDrop is the share of the initial value lost by the final one.
func RelativeDrop(series []float64) float64 {
	if len(series) < 2 || series[0] == 0 {
		return 0
	}
	return (series[0] - series[len(series)-1]) / series[0]
}

// OutageStats describes the final component counts of an ensemble of runs.
type OutageStats struct {
	Runs   int     `json:"runs"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// NewOutageStats summarises final component counts. The standard deviation
// is the unbiased sample estimate and is zero for a single run.
func NewOutageStats(components []float64) OutageStats {
	s := OutageStats{Runs: len(components)}
	if len(components) == 0 {
		return s
	}
	s.Min = floats.Min(components)
	s.Max = floats.Max(components)
	if len(components) == 1 {
		s.Mean = components[0]
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(components, nil)
	return s
}

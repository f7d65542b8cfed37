package trace

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	Iterations        int
	Completed         int // iterations with a defined performance
	Aborted           int // iterations stopped by an invalid decision
	Undefined         int // iterations excluded from the performance statistics (includes Aborted)
	MeanPerformance   float64
	StdDevPerformance float64
	MinPerformance    float64
	MaxPerformance    float64
	TotalSteps        int
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{}
	if st == nil {
		return summary
	}

	summary.Iterations = len(st.Iterations)
	perf := make([]float64, 0, len(st.Iterations))
	for _, it := range st.Iterations {
		summary.TotalSteps += it.Steps
		if it.Aborted {
			summary.Aborted++
		}
		if it.Aborted || !IsDefined(it.Performance) {
			summary.Undefined++
			continue
		}
		perf = append(perf, it.Performance)
	}
	summary.Completed = len(perf)

	if len(perf) > 0 {
		summary.MinPerformance = floats.Min(perf)
		summary.MaxPerformance = floats.Max(perf)
		if len(perf) > 1 {
			summary.MeanPerformance, summary.StdDevPerformance = stat.MeanStdDev(perf, nil)
		} else {
			summary.MeanPerformance = perf[0]
		}
	}
	return summary
}

// IsDefined reports whether v is a usable performance value.
func IsDefined(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

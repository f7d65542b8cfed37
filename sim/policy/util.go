package policy

import (
	"math"

	"github.com/dealer-sim/dealer-sim/sim"
)

var trendFactors = map[sim.Trend]float64{
	sim.TrendRising:    1.2,
	sim.TrendStable:    1.0,
	sim.TrendDeclining: 0.8,
}

// TrendFactor returns the demand multiplier for a trend; labels other than
// rising, stable and declining count as stable.
func TrendFactor(trend sim.Trend) float64 {
	if f, ok := trendFactors[trend]; ok {
		return f
	}
	return 1.0
}

// ApplyTrendAdjustment scales base by factor and truncates to whole units.
// The result saturates at math.MaxInt; non-positive and NaN results are 0.
func ApplyTrendAdjustment(base, factor float64) int {
	return wholeUnits(base * factor)
}

// wholeUnits truncates v to an int without leaving the int range.
func wholeUnits(v float64) int {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= math.MaxInt:
		return math.MaxInt
	}
	return int(v)
}

// AggregateTrend returns the most common trend across the fleet. Season
// labels count as stable; ties and empty fleets resolve to stable.
func AggregateTrend(state sim.State) sim.Trend {
	counts := make(map[sim.Trend]int)
	for _, car := range state.Fleet() {
		tr := state.MarketTrend(car)
		if _, ok := trendFactors[tr]; !ok {
			tr = sim.TrendStable
		}
		counts[tr]++
	}
	best, bestCount, tie := sim.TrendStable, 0, false
	for _, tr := range []sim.Trend{sim.TrendRising, sim.TrendDeclining, sim.TrendStable} {
		switch c := counts[tr]; {
		case c > bestCount:
			best, bestCount, tie = tr, c, false
		case c == bestCount && c > 0:
			tie = true
		}
	}
	if tie {
		return sim.TrendStable
	}
	return best
}

// PricingDecision undercuts the competitor by markdown, never below zero.
func PricingDecision(competitor, markdown float64) float64 {
	return math.Max(0, competitor-markdown)
}

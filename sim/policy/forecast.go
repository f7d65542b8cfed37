package policy

import (
	"math"

	"github.com/dealer-sim/dealer-sim/sim"
)

// ForecastPolicy is the forecast-adaptive order-up-to policy. It orders the
// trend-adjusted demand forecast plus a safety buffer of sqrt(demand
// variance) units, never beyond ThetaMax. It prices 50 under the competitor
// and never discounts.
type ForecastPolicy struct {
	thetaMin map[sim.CarModel]int // carried for reporting; the order rule only needs the max
	thetaMax map[sim.CarModel]int
}

// NewForecastPolicy creates a ForecastPolicy with externally supplied
// thresholds. A car without a ThetaMax entry is never restocked.
func NewForecastPolicy(thetaMin, thetaMax map[sim.CarModel]int) *ForecastPolicy {
	return &ForecastPolicy{thetaMin: thetaMin, thetaMax: thetaMax}
}

func (p *ForecastPolicy) Name() string { return NameForecastOrderUpTo }

// ThetaMin returns the minimum threshold configured for car.
func (p *ForecastPolicy) ThetaMin(car sim.CarModel) int { return p.thetaMin[car] }

func (p *ForecastPolicy) Decide(ctx Context) sim.RawDecision {
	state := ctx.State
	fleet := state.Fleet()
	d := sim.RawDecision{
		Restock:  make(map[sim.CarModel]int, len(fleet)),
		Price:    make(map[sim.CarModel]float64, len(fleet)),
		Discount: make(map[sim.CarModel]float64, len(fleet)),
	}
	for _, car := range fleet {
		level := state.Inventory(car)
		safety := math.Floor(math.Sqrt(ctx.Stats.DemandVariance[car]))
		if math.IsNaN(safety) {
			safety = 0
		}
		target := ApplyTrendAdjustment(state.DemandForecast(car)+safety, TrendFactor(state.MarketTrend(car)))

		d.Restock[car] = max(0, min(p.thetaMax[car]-level, target))
		d.Price[car] = PricingDecision(state.CompetitorPrice(car), 50)
		d.Discount[car] = 0
	}
	return d
}

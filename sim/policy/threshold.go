package policy

import (
	"github.com/dealer-sim/dealer-sim/sim"
)

// Threshold is an order-up-to band for one car: restock up to Max once the
// level drops below Min.
type Threshold struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// SeasonalThresholds holds one threshold table per season bucket.
type SeasonalThresholds struct {
	Winter map[sim.CarModel]Threshold `yaml:"winter"`
	Summer map[sim.CarModel]Threshold `yaml:"summer"`
}

// DefaultSeasonalThresholds returns the stock three-car tables.
func DefaultSeasonalThresholds() SeasonalThresholds {
	return SeasonalThresholds{
		Winter: map[sim.CarModel]Threshold{
			"Car A": {Min: 5, Max: 15},
			"Car B": {Min: 10, Max: 20},
			"Car C": {Min: 5, Max: 15},
		},
		Summer: map[sim.CarModel]Threshold{
			"Car A": {Min: 10, Max: 20},
			"Car B": {Min: 12, Max: 25},
			"Car C": {Min: 8, Max: 20},
		},
	}
}

// IsWinter reports whether step t falls in the winter bucket. Steps map to
// calendar months by t mod 12; months 9, 10, 11, 0 and 1 are winter.
func IsWinter(t int) bool {
	switch t % 12 {
	case 9, 10, 11, 0, 1:
		return true
	}
	return false
}

// forSeason returns a copy of the table for step t with the trend
// adjustment applied: rising raises every max by 2, declining lowers every
// min by 2 (floored at 0).
func (s SeasonalThresholds) forSeason(t int, trend sim.Trend) map[sim.CarModel]Threshold {
	src := s.Summer
	if IsWinter(t) {
		src = s.Winter
	}
	out := make(map[sim.CarModel]Threshold, len(src))
	for car, th := range src {
		switch trend {
		case sim.TrendRising:
			th.Max += 2
		case sim.TrendDeclining:
			th.Min = max(0, th.Min-2)
		}
		out[car] = th
	}
	return out
}

// ThresholdPolicy is the seasonal order-up-to policy.
//
// Cars below their minimum are restocked up to their maximum, limited by the
// capacity left in the lot. Capacity is handed out in fleet order, first
// come first served: an early car can exhaust capacity that a later car
// needed more. Cars absent from the threshold table are never restocked.
type ThresholdPolicy struct {
	thresholds SeasonalThresholds
}

// NewThresholdPolicy creates a ThresholdPolicy over the given tables.
func NewThresholdPolicy(thresholds SeasonalThresholds) *ThresholdPolicy {
	return &ThresholdPolicy{thresholds: thresholds}
}

func (p *ThresholdPolicy) Name() string { return NameOrderUpTo }

func (p *ThresholdPolicy) Decide(ctx Context) sim.RawDecision {
	state := ctx.State
	fleet := state.Fleet()
	table := p.thresholds.forSeason(ctx.T, AggregateTrend(state))

	d := sim.RawDecision{
		Restock:  make(map[sim.CarModel]int, len(fleet)),
		Price:    make(map[sim.CarModel]float64, len(fleet)),
		Discount: make(map[sim.CarModel]float64, len(fleet)),
	}

	available := max(0, ctx.MaxInventory-state.TotalInventory())
	for _, car := range fleet {
		level := state.Inventory(car)
		th, ok := table[car]
		if !ok || level >= th.Min {
			d.Restock[car] = 0
			continue
		}
		qty := max(0, min(th.Max-level, available))
		d.Restock[car] = qty
		available -= qty
	}

	for _, car := range fleet {
		held := state.HoldingTime(car)
		markdown := 50.0
		if held > 10 {
			markdown = 100
		}
		d.Price[car] = PricingDecision(state.CompetitorPrice(car), markdown)
		if held > 30 {
			d.Discount[car] = ctx.DiscountRate
		} else {
			d.Discount[car] = 0
		}
	}
	return d
}

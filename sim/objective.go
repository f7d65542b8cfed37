package sim

import "math"

// Profit breaks one step's objective into its components.
type Profit struct {
	Revenue        float64
	RestockingCost float64
	HoldingCost    float64
	Total          float64 // Revenue - (RestockingCost + HoldingCost)
}

// StepProfit computes the step objective for d and exog against the
// pre-transition state. It must be called with the same exog that is passed
// to Transition.
//
// Revenue sums min(inventory, demand) * price. Restocking costs
// RestockUnitCost per unit. Holding cost charges every unsold unit its
// current holding time times the seasonal rate of the car's new trend label.
func (m *Model) StepProfit(d Decision, exog ExogenousInfo) Profit {
	var p Profit
	for _, car := range m.fleet {
		inv := float64(m.state.inventoryLevel[car])
		demand := exog.Demand[car]

		p.Revenue += math.Min(inv, demand) * d.price[car]
		p.RestockingCost += float64(d.restock[car]) * m.cfg.RestockUnitCost

		unsold := inv - math.Min(inv, math.Trunc(demand))
		rate := m.cfg.seasonalHoldingRate(exog.MarketTrends[car])
		p.HoldingCost += unsold * float64(m.state.holdingTime[car]) * rate
	}
	p.Total = p.Revenue - (p.RestockingCost + p.HoldingCost)
	return p
}

package sim

import (
	"math"
)

// TransitionResult is the next state plus per-car diagnostics that are not
// part of the state.
type TransitionResult struct {
	State     State
	CarsSold  map[CarModel]int
	CarsAdded map[CarModel]int
}

// Transition computes the state that follows the current one under d and
// exog. It reads the model but never modifies it.
//
// Per car: sold = min(round(demand), inventory); the new inventory is
// inventory + restock - sold, floored at zero; holding time grows by one
// while stock remains and resets to zero once the lot empties. Trend lags
// shift by one period and the demand forecast becomes the realised demand
// grown by ForecastDriftRate * t.
func (m *Model) Transition(d Decision, exog ExogenousInfo) TransitionResult {
	cur := m.state
	n := len(m.fleet)
	next := State{
		fleet:            m.fleet,
		inventoryLevel:   make(map[CarModel]int, n),
		holdingTime:      make(map[CarModel]int, n),
		competitorPrice:  make(map[CarModel]float64, n),
		marketTrends:     make(map[CarModel]Trend, n),
		marketTrendsLag1: cur.marketTrends,
		marketTrendsLag2: cur.marketTrendsLag1,
		demandForecast:   make(map[CarModel]float64, n),
	}
	res := TransitionResult{
		CarsSold:  make(map[CarModel]int, n),
		CarsAdded: make(map[CarModel]int, n),
	}

	growth := 1 + m.cfg.ForecastDriftRate*float64(m.t)
	for _, car := range m.fleet {
		demand := exog.Demand[car]
		inv := cur.inventoryLevel[car]

		// Compare in float64 first: demand can outgrow the int range.
		sold := inv
		if demand < float64(inv) {
			sold = int(math.RoundToEven(demand))
		}
		added := d.restock[car]
		newInv := max(0, inv+added-sold)

		res.CarsSold[car] = sold
		res.CarsAdded[car] = added
		next.inventoryLevel[car] = newInv
		if newInv > 0 {
			next.holdingTime[car] = cur.holdingTime[car] + 1
		} else {
			next.holdingTime[car] = 0
		}

		if p, ok := exog.CompetitorPrices[car]; ok {
			next.competitorPrice[car] = p
		} else {
			next.competitorPrice[car] = cur.competitorPrice[car]
		}
		if tr, ok := exog.MarketTrends[car]; ok {
			next.marketTrends[car] = tr
		} else {
			next.marketTrends[car] = TrendStable
		}
		next.demandForecast[car] = math.Max(0, demand*growth)
	}

	res.State = next
	return res
}

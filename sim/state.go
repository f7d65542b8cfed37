package sim

import (
	"maps"
	"slices"
)

// CarModel identifies a tracked car model (e.g. "Car A").
type CarModel string

// Trend is a market-trend category for one car. The canonical categories are
// TrendStable, TrendRising and TrendDeclining; when a market reference row is
// available the period's season label (e.g. "Winter") is carried instead.
type Trend string

const (
	TrendStable    Trend = "stable"
	TrendRising    Trend = "rising"
	TrendDeclining Trend = "declining"
)

// TrendEtaParams returns the fixed probability-weight triple per trend
// category. The weights never vary over time.
func TrendEtaParams() map[Trend][3]float64 {
	return map[Trend][3]float64{
		TrendStable:    {0.6, 0.3, 0.1},
		TrendRising:    {0.7, 0.2, 0.1},
		TrendDeclining: {0.5, 0.3, 0.2},
	}
}

// === State ===

// State is an immutable snapshot of the simulation variables at time t.
// Every per-car mapping is keyed by the same fleet. Accessors return copies,
// so a State handed to a policy or stored in a trace can never change.
type State struct {
	fleet            []CarModel
	inventoryLevel   map[CarModel]int
	holdingTime      map[CarModel]int
	competitorPrice  map[CarModel]float64
	marketTrends     map[CarModel]Trend
	marketTrendsLag1 map[CarModel]Trend
	marketTrendsLag2 map[CarModel]Trend
	demandForecast   map[CarModel]float64
}

// Fleet returns the tracked car models in enumeration order.
func (s State) Fleet() []CarModel { return slices.Clone(s.fleet) }

func (s State) Inventory(car CarModel) int { return s.inventoryLevel[car] }
func (s State) HoldingTime(car CarModel) int { return s.holdingTime[car] }
func (s State) CompetitorPrice(car CarModel) float64 { return s.competitorPrice[car] }
func (s State) MarketTrend(car CarModel) Trend { return s.marketTrends[car] }
func (s State) MarketTrendLag1(car CarModel) Trend { return s.marketTrendsLag1[car] }
func (s State) MarketTrendLag2(car CarModel) Trend { return s.marketTrendsLag2[car] }
func (s State) DemandForecast(car CarModel) float64 { return s.demandForecast[car] }
func (s State) InventoryLevels() map[CarModel]int { return maps.Clone(s.inventoryLevel) }
func (s State) HoldingTimes() map[CarModel]int { return maps.Clone(s.holdingTime) }
func (s State) CompetitorPrices() map[CarModel]float64 { return maps.Clone(s.competitorPrice) }
func (s State) MarketTrends() map[CarModel]Trend { return maps.Clone(s.marketTrends) }
func (s State) MarketTrendsLag1() map[CarModel]Trend { return maps.Clone(s.marketTrendsLag1) }
func (s State) MarketTrendsLag2() map[CarModel]Trend { return maps.Clone(s.marketTrendsLag2) }
func (s State) DemandForecasts() map[CarModel]float64 { return maps.Clone(s.demandForecast) }

// TrendEtaParams returns the trend weight table carried by every state.
func (s State) TrendEtaParams() map[Trend][3]float64 { return TrendEtaParams() }

// TotalInventory sums inventory across the fleet.
func (s State) TotalInventory() int {
	total := 0
	for _, car := range s.fleet {
		total += s.inventoryLevel[car]
	}
	return total
}

// === Decision ===

// RawDecision is the loosely-shaped output of a policy. Any car a policy
// leaves out is filled with zero by Model.BuildDecision.
type RawDecision struct {
	Restock  map[CarModel]int
	Price    map[CarModel]float64
	Discount map[CarModel]float64
}

// Decision is an immutable snapshot of the action taken at time t.
type Decision struct {
	restock  map[CarModel]int
	price    map[CarModel]float64
	discount map[CarModel]float64
}

// NewDecision copies the given mappings into a Decision. Nil maps are
// treated as empty.
func NewDecision(restock map[CarModel]int, price, discount map[CarModel]float64) Decision {
	d := Decision{
		restock:  maps.Clone(restock),
		price:    maps.Clone(price),
		discount: maps.Clone(discount),
	}
	if d.restock == nil {
		d.restock = map[CarModel]int{}
	}
	if d.price == nil {
		d.price = map[CarModel]float64{}
	}
	if d.discount == nil {
		d.discount = map[CarModel]float64{}
	}
	return d
}

func (d Decision) Restock(car CarModel) int { return d.restock[car] }
func (d Decision) Price(car CarModel) float64 { return d.price[car] }
func (d Decision) Discount(car CarModel) float64 { return d.discount[car] }
func (d Decision) Restocks() map[CarModel]int { return maps.Clone(d.restock) }
func (d Decision) Prices() map[CarModel]float64 { return maps.Clone(d.price) }
func (d Decision) Discounts() map[CarModel]float64 { return maps.Clone(d.discount) }

// === ExogenousInfo ===

// ExogenousInfo is the information realised for one step that the policy
// does not control. It is produced fresh per step and never stored in State.
type ExogenousInfo struct {
	Demand           map[CarModel]float64
	CompetitorPrices map[CarModel]float64
	MarketTrends     map[CarModel]Trend
}

// === InitialState ===

// InitialState is the caller-supplied S0. Fleet fixes the enumeration order;
// when empty, the keys of InventoryLevel are used in sorted order.
// MarketTrends and its lags are optional and default to stable.
type InitialState struct {
	Fleet            []CarModel
	InventoryLevel   map[CarModel]int
	HoldingTime      map[CarModel]int
	CompetitorPrice  map[CarModel]float64
	MarketTrends     map[CarModel]Trend
	MarketTrendsLag1 map[CarModel]Trend
	MarketTrendsLag2 map[CarModel]Trend
	DemandForecast   map[CarModel]float64
}

// === Statistics ===

// Statistics holds auxiliary per-car statistics a policy may read.
type Statistics struct {
	DemandVariance   map[CarModel]float64
	ForecastVariance map[CarModel]float64
}

func (st Statistics) clone() Statistics {
	return Statistics{
		DemandVariance:   maps.Clone(st.DemandVariance),
		ForecastVariance: maps.Clone(st.ForecastVariance),
	}
}

// sim/model.go
package sim

import (
	"fmt"
	"maps"
	"slices"

	"github.com/sirupsen/logrus"
)

// Model is the dealership simulation model. It owns the current State, the
// time index, the cumulative objective and the running demand statistics,
// and exposes the exogenous-information, transition and objective functions.
//
// The model moves through two states: running (t < T) and finished (t == T).
// Each accepted Step advances t by exactly one.
type Model struct {
	cfg      ModelConfig
	fleet    []CarModel
	fleetSet map[CarModel]bool

	initial   State
	state     State
	t         int
	objective float64
	stats     Statistics

	stream *RandomStream
	market *MarketTable
}

// StepOutcome reports what happened during one accepted step.
type StepOutcome struct {
	T         int // time index the step started at
	Exog      ExogenousInfo
	Profit    Profit
	CarsSold  map[CarModel]int
	CarsAdded map[CarModel]int
	State     State // post-transition state
}

// NewModel builds a model from the initial state s0. market may be nil
// unless cfg.RequireMarketTrends is set. Every failure is a
// *ConfigurationError.
func NewModel(s0 InitialState, cfg ModelConfig, market *MarketTable) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, &ConfigurationError{Field: "config", Reason: err.Error()}
	}
	seasonal, err := cfg.normalizedSeasonalCosts()
	if err != nil {
		return nil, &ConfigurationError{Field: "seasonal_holding_cost", Reason: err.Error()}
	}
	cfg.SeasonalHoldingCost = seasonal
	if cfg.RequireMarketTrends && market == nil {
		return nil, &ConfigurationError{Field: "market_trends", Reason: "market-trend reference is required but was not supplied"}
	}

	initial, err := buildInitialState(s0)
	if err != nil {
		return nil, err
	}

	fleetSet := make(map[CarModel]bool, len(initial.fleet))
	for _, car := range initial.fleet {
		fleetSet[car] = true
	}

	m := &Model{
		cfg:      cfg,
		fleet:    initial.fleet,
		fleetSet: fleetSet,
		initial:  initial,
		state:    initial,
		stats:    zeroStatistics(initial.fleet),
		stream:   NewRandomStream(NewSimulationKey(cfg.Seed)),
		market:   market,
	}
	logrus.Debugf("model created: fleet=%v horizon=%d seed=%d max_inventory=%d",
		m.fleet, cfg.Horizon, cfg.Seed, cfg.MaxInventory)
	return m, nil
}

func buildInitialState(s0 InitialState) (State, error) {
	required := []struct {
		field   string
		present bool
	}{
		{"inventory_level", s0.InventoryLevel != nil},
		{"holding_time", s0.HoldingTime != nil},
		{"competitor_price", s0.CompetitorPrice != nil},
		{"demand_forecast", s0.DemandForecast != nil},
	}
	for _, r := range required {
		if !r.present {
			return State{}, &ConfigurationError{Field: r.field, Reason: "required initial-state field is missing"}
		}
	}

	fleet := slices.Clone(s0.Fleet)
	if len(fleet) == 0 {
		fleet = slices.Sorted(maps.Keys(s0.InventoryLevel))
	}
	if len(fleet) == 0 {
		return State{}, &ConfigurationError{Field: "inventory_level", Reason: "fleet is empty"}
	}
	seen := make(map[CarModel]bool, len(fleet))
	for _, car := range fleet {
		if seen[car] {
			return State{}, &ConfigurationError{Field: "fleet", Reason: fmt.Sprintf("duplicate car model %q", car)}
		}
		seen[car] = true
	}

	if err := checkKeys("inventory_level", s0.InventoryLevel, seen); err != nil {
		return State{}, err
	}
	if err := checkKeys("holding_time", s0.HoldingTime, seen); err != nil {
		return State{}, err
	}
	if err := checkKeys("competitor_price", s0.CompetitorPrice, seen); err != nil {
		return State{}, err
	}
	if err := checkKeys("demand_forecast", s0.DemandForecast, seen); err != nil {
		return State{}, err
	}

	for _, car := range fleet {
		switch {
		case s0.InventoryLevel[car] < 0:
			return State{}, &ConfigurationError{Field: "inventory_level", Reason: fmt.Sprintf("negative value for %q", car)}
		case s0.HoldingTime[car] < 0:
			return State{}, &ConfigurationError{Field: "holding_time", Reason: fmt.Sprintf("negative value for %q", car)}
		case s0.CompetitorPrice[car] < 0:
			return State{}, &ConfigurationError{Field: "competitor_price", Reason: fmt.Sprintf("negative value for %q", car)}
		case s0.DemandForecast[car] < 0:
			return State{}, &ConfigurationError{Field: "demand_forecast", Reason: fmt.Sprintf("negative value for %q", car)}
		}
	}

	trends, err := trendsOrStable("market_trends", s0.MarketTrends, fleet, seen)
	if err != nil {
		return State{}, err
	}
	lag1, err := trendsOrStable("market_trends_lag1", s0.MarketTrendsLag1, fleet, seen)
	if err != nil {
		return State{}, err
	}
	lag2, err := trendsOrStable("market_trends_lag2", s0.MarketTrendsLag2, fleet, seen)
	if err != nil {
		return State{}, err
	}

	return State{
		fleet:            fleet,
		inventoryLevel:   maps.Clone(s0.InventoryLevel),
		holdingTime:      maps.Clone(s0.HoldingTime),
		competitorPrice:  maps.Clone(s0.CompetitorPrice),
		marketTrends:     trends,
		marketTrendsLag1: lag1,
		marketTrendsLag2: lag2,
		demandForecast:   maps.Clone(s0.DemandForecast),
	}, nil
}

// checkKeys requires m's key set to equal the fleet.
func checkKeys[V any](field string, m map[CarModel]V, fleet map[CarModel]bool) error {
	if len(m) != len(fleet) {
		return &ConfigurationError{Field: field, Reason: fmt.Sprintf("has %d cars, fleet has %d", len(m), len(fleet))}
	}
	for car := range m {
		if !fleet[car] {
			return &ConfigurationError{Field: field, Reason: fmt.Sprintf("unknown car model %q", car)}
		}
	}
	return nil
}

func trendsOrStable(field string, in map[CarModel]Trend, fleet []CarModel, fleetSet map[CarModel]bool) (map[CarModel]Trend, error) {
	if in == nil {
		out := make(map[CarModel]Trend, len(fleet))
		for _, car := range fleet {
			out[car] = TrendStable
		}
		return out, nil
	}
	if err := checkKeys(field, in, fleetSet); err != nil {
		return nil, err
	}
	return maps.Clone(in), nil
}

func zeroStatistics(fleet []CarModel) Statistics {
	st := Statistics{
		DemandVariance:   make(map[CarModel]float64, len(fleet)),
		ForecastVariance: make(map[CarModel]float64, len(fleet)),
	}
	for _, car := range fleet {
		st.DemandVariance[car] = 0
		st.ForecastVariance[car] = 0
	}
	return st
}

// === Accessors ===

func (m *Model) State() State { return m.state }
func (m *Model) T() int { return m.t }
func (m *Model) Horizon() int { return m.cfg.Horizon }
func (m *Model) Objective() float64 { return m.objective }
func (m *Model) Fleet() []CarModel { return slices.Clone(m.fleet) }
func (m *Model) Stream() *RandomStream { return m.stream }

// Config returns a copy of the model configuration.
func (m *Model) Config() ModelConfig {
	cfg := m.cfg
	cfg.SeasonalHoldingCost = maps.Clone(m.cfg.SeasonalHoldingCost)
	return cfg
}

// Statistics returns a read-only snapshot of the running demand statistics.
func (m *Model) Statistics() Statistics { return m.stats.clone() }

// IsFinished reports whether the horizon has been reached.
func (m *Model) IsFinished() bool {
	return m.t >= m.cfg.Horizon
}

// === Lifecycle ===

// Reset restores the initial state, time and objective. With resetPRNG the
// random stream is rewound to its seed, giving a reproducible replay;
// without it the stream keeps advancing so repeated runs draw fresh demand.
func (m *Model) Reset(resetPRNG bool) {
	m.state = m.initial
	m.t = 0
	m.objective = 0
	m.stats = zeroStatistics(m.fleet)
	if resetPRNG {
		m.stream.Reseed()
	}
}

// Clone returns an independent logical copy that SHARES the random stream.
// Cloning never reseeds; draws made by the clone advance the original's
// stream too.
func (m *Model) Clone() *Model {
	return m.CloneWithStream(m.stream)
}

// CloneWithStream returns an independent logical copy drawing from stream.
func (m *Model) CloneWithStream(stream *RandomStream) *Model {
	c := *m
	c.stats = m.stats.clone()
	c.stream = stream
	return &c
}

// === Decisions ===

// BuildDecision normalises policy output into a Decision covering every car
// in the fleet. Omitted cars get zero restock, price and discount. Cars
// outside the fleet are kept so that ValidateDecision rejects them.
func (m *Model) BuildDecision(raw RawDecision) Decision {
	restock := make(map[CarModel]int, len(m.fleet))
	price := make(map[CarModel]float64, len(m.fleet))
	discount := make(map[CarModel]float64, len(m.fleet))
	for _, car := range m.fleet {
		restock[car] = raw.Restock[car]
		price[car] = raw.Price[car]
		discount[car] = raw.Discount[car]
	}
	maps.Insert(restock, maps.All(raw.Restock))
	maps.Insert(price, maps.All(raw.Price))
	maps.Insert(discount, maps.All(raw.Discount))
	return Decision{restock: restock, price: price, discount: discount}
}

// ValidateDecision returns a *ValidationError when d must not be applied to
// the current state: a car outside the fleet, a negative restock, price or
// discount, or a post-restock total above MaxInventory.
func (m *Model) ValidateDecision(d Decision) error {
	for _, keys := range [][]CarModel{
		slices.Collect(maps.Keys(d.restock)),
		slices.Collect(maps.Keys(d.price)),
		slices.Collect(maps.Keys(d.discount)),
	} {
		for _, car := range keys {
			if !m.fleetSet[car] {
				return &ValidationError{Car: car, Reason: "car model is not part of the fleet"}
			}
		}
	}

	for _, car := range m.fleet {
		if d.restock[car] < 0 {
			return &ValidationError{Car: car, Reason: fmt.Sprintf("restock %d is negative", d.restock[car])}
		}
		if d.price[car] < 0 {
			return &ValidationError{Car: car, Reason: fmt.Sprintf("price %.2f is negative", d.price[car])}
		}
		if d.discount[car] < 0 {
			return &ValidationError{Car: car, Reason: fmt.Sprintf("discount %.2f is negative", d.discount[car])}
		}
	}

	// headroom stays in range: a restock is subtracted only once it fits.
	headroom := m.cfg.MaxInventory
	for _, car := range m.fleet {
		headroom -= m.state.inventoryLevel[car]
		if d.restock[car] > headroom {
			return &ValidationError{Reason: fmt.Sprintf("restocking %d of %q takes total inventory above capacity %d",
				d.restock[car], car, m.cfg.MaxInventory)}
		}
		headroom -= d.restock[car]
	}
	return nil
}

// === Step ===

// Step validates d, realises exogenous information, computes the step profit
// against the pre-transition state and then moves to the next state. A
// rejected decision leaves the model untouched.
func (m *Model) Step(d Decision) (StepOutcome, error) {
	if m.IsFinished() {
		return StepOutcome{}, ErrFinished
	}
	if err := m.ValidateDecision(d); err != nil {
		return StepOutcome{}, err
	}
	exog, err := m.ExogInfo(d)
	if err != nil {
		return StepOutcome{}, err
	}

	profit := m.StepProfit(d, exog)
	next := m.Transition(d, exog)

	m.updateStatistics(exog, next.State)
	startT := m.t
	m.state = next.State
	m.objective += profit.Total
	m.t++

	logrus.Debugf("[t=%03d] revenue=%.2f restocking=%.2f holding=%.2f profit=%.2f cumulative=%.2f",
		startT, profit.Revenue, profit.RestockingCost, profit.HoldingCost, profit.Total, m.objective)

	return StepOutcome{
		T:         startT,
		Exog:      exog,
		Profit:    profit,
		CarsSold:  next.CarsSold,
		CarsAdded: next.CarsAdded,
		State:     next.State,
	}, nil
}

// updateStatistics smooths the squared forecast errors with Alpha.
func (m *Model) updateStatistics(exog ExogenousInfo, next State) {
	a := m.cfg.Alpha
	for _, car := range m.fleet {
		forecast := m.state.demandForecast[car]
		demandErr := exog.Demand[car] - forecast
		forecastShift := next.demandForecast[car] - forecast
		m.stats.DemandVariance[car] = (1-a)*m.stats.DemandVariance[car] + a*demandErr*demandErr
		m.stats.ForecastVariance[car] = (1-a)*m.stats.ForecastVariance[car] + a*forecastShift*forecastShift
	}
}

// Package policy provides decision policies for the dealership model.
package policy

import (
	"fmt"
	"sort"

	"github.com/dealer-sim/dealer-sim/sim"
)

// Context is everything a policy may read when deciding at time T. The
// state and statistics are snapshots; policies cannot change the model.
type Context struct {
	State        sim.State
	T            int
	Horizon      int
	MaxInventory int
	DiscountRate float64
	Stats        sim.Statistics
}

// NewContext snapshots the model's current decision context.
func NewContext(m *sim.Model) Context {
	cfg := m.Config()
	return Context{
		State:        m.State(),
		T:            m.T(),
		Horizon:      m.Horizon(),
		MaxInventory: cfg.MaxInventory,
		DiscountRate: cfg.DiscountRate,
		Stats:        m.Statistics(),
	}
}

// Policy maps a decision context to a decision. Implementations must be pure
// given ctx and their own configuration, must never return negative values,
// and should cover every car in ctx.State.Fleet().
type Policy interface {
	Name() string
	Decide(ctx Context) sim.RawDecision
}

const (
	NameOrderUpTo         = "order-up-to"
	NameForecastOrderUpTo = "forecast-order-up-to"
)

// ValidPolicies is the set of recognized policy names.
var ValidPolicies = map[string]bool{NameOrderUpTo: true, NameForecastOrderUpTo: true}

// ValidPolicyNames returns the recognized policy names, sorted.
func ValidPolicyNames() []string {
	names := make([]string, 0, len(ValidPolicies))
	for n := range ValidPolicies {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Config carries the parameters of every policy variant; each variant reads
// only its own fields.
type Config struct {
	Seasonal SeasonalThresholds   // order-up-to
	ThetaMin map[sim.CarModel]int // forecast-order-up-to
	ThetaMax map[sim.CarModel]int // forecast-order-up-to
}

// NewPolicy creates a policy by name.
func NewPolicy(name string, cfg Config) (Policy, error) {
	switch name {
	case NameOrderUpTo:
		return NewThresholdPolicy(cfg.Seasonal), nil
	case NameForecastOrderUpTo:
		return NewForecastPolicy(cfg.ThetaMin, cfg.ThetaMax), nil
	default:
		return nil, fmt.Errorf("unknown policy %q; valid policies: %v", name, ValidPolicyNames())
	}
}

// DeriveThresholds builds per-car order-up-to thresholds from the starting
// stock: min = max(2, stock-2), max = stock+5.
func DeriveThresholds(fleet []sim.CarModel, stock map[sim.CarModel]int) (thetaMin, thetaMax map[sim.CarModel]int) {
	thetaMin = make(map[sim.CarModel]int, len(fleet))
	thetaMax = make(map[sim.CarModel]int, len(fleet))
	for _, car := range fleet {
		thetaMin[car] = max(2, stock[car]-2)
		thetaMax[car] = stock[car] + 5
	}
	return thetaMin, thetaMax
}

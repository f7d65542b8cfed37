package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dealer-sim/dealer-sim/sim"
	"github.com/dealer-sim/dealer-sim/sim/internal/testutil"
)

func TestForecastPolicy_Decide(t *testing.T) {
	tests := []struct {
		name     string
		trend    sim.Trend
		variance float64
		want     int
	}{
		{"forecast only", sim.TrendStable, 0, 4},
		{"safety buffer from variance", sim.TrendStable, 9, 7},
		{"rising capped at theta max", sim.TrendRising, 9, 7},
		{"declining shrinks the order", sim.TrendDeclining, 9, 5},
		{"fractional buffer truncated", sim.TrendStable, 8, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN 3 units, a forecast of 4 and theta max of 10
			s0 := testutil.SingleCarLot("Car A", 3, 4, 1000)
			s0.MarketTrends = map[sim.CarModel]sim.Trend{"Car A": tt.trend}
			ctx := contextFor(t, s0, 100)
			ctx.Stats = sim.Statistics{DemandVariance: map[sim.CarModel]float64{"Car A": tt.variance}}
			p := NewForecastPolicy(map[sim.CarModel]int{"Car A": 2}, map[sim.CarModel]int{"Car A": 10})

			// WHEN deciding
			d := p.Decide(ctx)

			// THEN the order follows the adjusted forecast
			assert.Equal(t, tt.want, d.Restock["Car A"])
			assert.Equal(t, 950.0, d.Price["Car A"])
			assert.Equal(t, 0.0, d.Discount["Car A"])
		})
	}
}

func TestForecastPolicy_AtThetaMax_NoRestock(t *testing.T) {
	ctx := contextFor(t, testutil.SingleCarLot("Car A", 12, 4, 1000), 100)
	p := NewForecastPolicy(nil, map[sim.CarModel]int{"Car A": 10})

	assert.Equal(t, 0, p.Decide(ctx).Restock["Car A"])
}

func TestForecastPolicy_MissingThetaMax_NoRestock(t *testing.T) {
	ctx := contextFor(t, testutil.SingleCarLot("Car A", 3, 4, 20), 100)
	p := NewForecastPolicy(nil, nil)

	d := p.Decide(ctx)

	assert.Equal(t, 0, d.Restock["Car A"])
	assert.Equal(t, 0.0, d.Price["Car A"], "price floored at zero")
}

func TestForecastPolicy_ThetaMin(t *testing.T) {
	p := NewForecastPolicy(map[sim.CarModel]int{"Car A": 2}, map[sim.CarModel]int{"Car A": 10})
	assert.Equal(t, 2, p.ThetaMin("Car A"))
	assert.Equal(t, NameForecastOrderUpTo, p.Name())
}

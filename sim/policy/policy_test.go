package policy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealer-sim/dealer-sim/sim"
	"github.com/dealer-sim/dealer-sim/sim/internal/testutil"
)

func TestNewPolicy_KnownNames(t *testing.T) {
	for _, name := range ValidPolicyNames() {
		p, err := NewPolicy(name, Config{Seasonal: DefaultSeasonalThresholds()})
		require.NoError(t, err)
		assert.Equal(t, name, p.Name())
	}
}

func TestNewPolicy_UnknownName_ReturnsError(t *testing.T) {
	_, err := NewPolicy("random", Config{})
	assert.Error(t, err)
}

func TestValidPolicyNames_Sorted(t *testing.T) {
	assert.Equal(t, []string{NameForecastOrderUpTo, NameOrderUpTo}, ValidPolicyNames())
}

func TestDeriveThresholds(t *testing.T) {
	fleet := []sim.CarModel{"Car A", "Car B"}
	thetaMin, thetaMax := DeriveThresholds(fleet, map[sim.CarModel]int{"Car A": 10, "Car B": 1})

	assert.Equal(t, map[sim.CarModel]int{"Car A": 8, "Car B": 2}, thetaMin)
	assert.Equal(t, map[sim.CarModel]int{"Car A": 15, "Car B": 6}, thetaMax)
}

func TestNewContext_SnapshotsModel(t *testing.T) {
	m := testutil.NewModel(t, testutil.ThreeCarLot(), func(c *sim.ModelConfig) {
		c.MaxInventory = 80
		c.DiscountRate = 0.1
	})

	ctx := NewContext(m)

	assert.Equal(t, 0, ctx.T)
	assert.Equal(t, 30, ctx.Horizon)
	assert.Equal(t, 80, ctx.MaxInventory)
	assert.Equal(t, 0.1, ctx.DiscountRate)
	assert.Equal(t, 20, ctx.State.Inventory("Car A"))
	assert.Equal(t, 0.0, ctx.Stats.DemandVariance["Car A"])
}

func TestPolicies_ProduceValidDecisionsOverHorizon(t *testing.T) {
	s0 := testutil.ThreeCarLot()
	thetaMin, thetaMax := DeriveThresholds(s0.Fleet, s0.InventoryLevel)
	policies := []Policy{
		NewThresholdPolicy(DefaultSeasonalThresholds()),
		NewForecastPolicy(thetaMin, thetaMax),
	}

	for _, p := range policies {
		t.Run(p.Name(), func(t *testing.T) {
			m := testutil.NewModel(t, s0, nil)
			for !m.IsFinished() {
				d := m.BuildDecision(p.Decide(NewContext(m)))
				testutil.AssertDecisionNonNegative(t, m.Fleet(), d)
				require.NoError(t, m.ValidateDecision(d))

				out, err := m.Step(d)
				require.NoError(t, err)
				testutil.AssertNonNegative(t, out.State)
			}
		})
	}
}

// === util ===

func TestTrendFactor(t *testing.T) {
	assert.Equal(t, 1.2, TrendFactor(sim.TrendRising))
	assert.Equal(t, 1.0, TrendFactor(sim.TrendStable))
	assert.Equal(t, 0.8, TrendFactor(sim.TrendDeclining))
	assert.Equal(t, 1.0, TrendFactor("Summer"))
}

func TestApplyTrendAdjustment_Truncates(t *testing.T) {
	assert.Equal(t, 8, ApplyTrendAdjustment(7, 1.2))
	assert.Equal(t, 5, ApplyTrendAdjustment(7, 0.8))
	assert.Equal(t, 0, ApplyTrendAdjustment(0, 1.2))
}

func TestApplyTrendAdjustment_SaturatesOutsideIntRange(t *testing.T) {
	assert.Equal(t, math.MaxInt, ApplyTrendAdjustment(7.46e41, 1.2))
	assert.Equal(t, math.MaxInt, ApplyTrendAdjustment(math.Inf(1), 1.0))
	assert.Equal(t, 0, ApplyTrendAdjustment(math.NaN(), 1.0))
}

func TestForecastPolicy_HugeForecast_RestockCappedByThetaMax(t *testing.T) {
	// GIVEN a forecast far beyond the int range and an undefined variance
	s0 := testutil.SingleCarLot("Car A", 3, 1e30, 1000)
	m := testutil.NewModel(t, s0, nil)
	ctx := NewContext(m)
	ctx.Stats = sim.Statistics{DemandVariance: map[sim.CarModel]float64{"Car A": math.NaN()}}
	p := NewForecastPolicy(nil, map[sim.CarModel]int{"Car A": 10})

	// WHEN deciding
	d := p.Decide(ctx)

	// THEN the order is the theta max gap, never a wrapped value
	assert.Equal(t, 7, d.Restock["Car A"])
}

func TestAggregateTrend(t *testing.T) {
	tests := []struct {
		name   string
		trends map[sim.CarModel]sim.Trend
		want   sim.Trend
	}{
		{"majority rising", map[sim.CarModel]sim.Trend{"Car A": sim.TrendRising, "Car B": sim.TrendRising, "Car C": sim.TrendDeclining}, sim.TrendRising},
		{"majority declining", map[sim.CarModel]sim.Trend{"Car A": sim.TrendDeclining, "Car B": sim.TrendDeclining, "Car C": sim.TrendStable}, sim.TrendDeclining},
		{"all distinct ties to stable", map[sim.CarModel]sim.Trend{"Car A": sim.TrendRising, "Car B": sim.TrendDeclining, "Car C": sim.TrendStable}, sim.TrendStable},
		{"season labels count as stable", map[sim.CarModel]sim.Trend{"Car A": "Winter", "Car B": "Summer", "Car C": sim.TrendRising}, sim.TrendStable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s0 := testutil.ThreeCarLot()
			s0.MarketTrends = tt.trends
			m := testutil.NewModel(t, s0, nil)

			assert.Equal(t, tt.want, AggregateTrend(m.State()))
		})
	}
}

func TestPricingDecision_FlooredAtZero(t *testing.T) {
	assert.Equal(t, 950.0, PricingDecision(1000, 50))
	assert.Equal(t, 0.0, PricingDecision(80, 100))
}

package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dealer-sim/dealer-sim/sim"
	"github.com/dealer-sim/dealer-sim/sim/internal/testutil"
)

func flatThresholds(th map[sim.CarModel]Threshold) SeasonalThresholds {
	return SeasonalThresholds{Winter: th, Summer: th}
}

func contextFor(t *testing.T, s0 sim.InitialState, capacity int) Context {
	t.Helper()
	m := testutil.NewModel(t, s0, func(c *sim.ModelConfig) { c.MaxInventory = capacity })
	return NewContext(m)
}

func TestIsWinter(t *testing.T) {
	winter := []int{0, 1, 9, 10, 11, 12, 13, 21}
	summer := []int{2, 3, 4, 5, 6, 7, 8, 14, 20}
	for _, step := range winter {
		assert.True(t, IsWinter(step), "t=%d", step)
	}
	for _, step := range summer {
		assert.False(t, IsWinter(step), "t=%d", step)
	}
}

func TestThresholdPolicy_BelowMin_RestocksToMax(t *testing.T) {
	// GIVEN 3 units of Car A against a 5/10 band and plenty of capacity
	ctx := contextFor(t, testutil.SingleCarLot("Car A", 3, 4, 1000), 50)
	p := NewThresholdPolicy(flatThresholds(map[sim.CarModel]Threshold{"Car A": {Min: 5, Max: 10}}))

	// WHEN deciding
	d := p.Decide(ctx)

	// THEN it orders up to the max and undercuts the competitor by 50
	assert.Equal(t, 7, d.Restock["Car A"])
	assert.Equal(t, 950.0, d.Price["Car A"])
	assert.Equal(t, 0.0, d.Discount["Car A"])
}

func TestThresholdPolicy_AtOrAboveMin_NoRestock(t *testing.T) {
	ctx := contextFor(t, testutil.SingleCarLot("Car A", 5, 4, 1000), 50)
	p := NewThresholdPolicy(flatThresholds(map[sim.CarModel]Threshold{"Car A": {Min: 5, Max: 10}}))

	assert.Equal(t, 0, p.Decide(ctx).Restock["Car A"])
}

func TestThresholdPolicy_CapacityAllocatedInFleetOrder(t *testing.T) {
	// GIVEN two empty cars that each want 10 units and only 12 free slots
	s0 := sim.InitialState{
		Fleet:           []sim.CarModel{"Car A", "Car B"},
		InventoryLevel:  map[sim.CarModel]int{"Car A": 0, "Car B": 0},
		HoldingTime:     map[sim.CarModel]int{"Car A": 0, "Car B": 0},
		CompetitorPrice: map[sim.CarModel]float64{"Car A": 100, "Car B": 100},
		DemandForecast:  map[sim.CarModel]float64{"Car A": 1, "Car B": 1},
	}
	ctx := contextFor(t, s0, 12)
	p := NewThresholdPolicy(flatThresholds(map[sim.CarModel]Threshold{
		"Car A": {Min: 5, Max: 10},
		"Car B": {Min: 5, Max: 10},
	}))

	// WHEN deciding
	d := p.Decide(ctx)

	// THEN the first car is served in full and the second gets the rest
	assert.Equal(t, 10, d.Restock["Car A"])
	assert.Equal(t, 2, d.Restock["Car B"])
}

func TestThresholdPolicy_FullLot_NoRestock(t *testing.T) {
	ctx := contextFor(t, testutil.SingleCarLot("Car A", 3, 4, 1000), 3)
	p := NewThresholdPolicy(flatThresholds(map[sim.CarModel]Threshold{"Car A": {Min: 5, Max: 10}}))

	assert.Equal(t, 0, p.Decide(ctx).Restock["Car A"])
}

func TestThresholdPolicy_TrendAdjustsBand(t *testing.T) {
	tests := []struct {
		name  string
		trend sim.Trend
		want  int
	}{
		{"stable keeps the band", sim.TrendStable, 7},
		{"rising raises the max", sim.TrendRising, 9},
		{"declining lowers the min", sim.TrendDeclining, 0},
		{"season label counts as stable", "Winter", 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s0 := testutil.SingleCarLot("Car A", 3, 4, 1000)
			s0.MarketTrends = map[sim.CarModel]sim.Trend{"Car A": tt.trend}
			ctx := contextFor(t, s0, 50)
			p := NewThresholdPolicy(flatThresholds(map[sim.CarModel]Threshold{"Car A": {Min: 5, Max: 10}}))

			assert.Equal(t, tt.want, p.Decide(ctx).Restock["Car A"])
		})
	}
}

func TestThresholdPolicy_SeasonSelectsTable(t *testing.T) {
	ctx := contextFor(t, testutil.SingleCarLot("Car A", 3, 4, 1000), 50)
	p := NewThresholdPolicy(SeasonalThresholds{
		Winter: map[sim.CarModel]Threshold{"Car A": {Min: 5, Max: 10}},
		Summer: map[sim.CarModel]Threshold{"Car A": {Min: 8, Max: 20}},
	})

	ctx.T = 0
	assert.Equal(t, 7, p.Decide(ctx).Restock["Car A"], "t=0 is winter")

	ctx.T = 5
	assert.Equal(t, 17, p.Decide(ctx).Restock["Car A"], "t=5 is summer")
}

func TestThresholdPolicy_PricingByHoldingTime(t *testing.T) {
	tests := []struct {
		name     string
		held     int
		price    float64
		discount float64
	}{
		{"fresh stock", 0, 950, 0},
		{"at ten periods", 10, 950, 0},
		{"long held", 11, 900, 0},
		{"at thirty periods", 30, 900, 0},
		{"stale stock discounted", 31, 900, 0.05},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s0 := testutil.SingleCarLot("Car A", 20, 4, 1000)
			s0.HoldingTime = map[sim.CarModel]int{"Car A": tt.held}
			ctx := contextFor(t, s0, 50)
			p := NewThresholdPolicy(DefaultSeasonalThresholds())

			d := p.Decide(ctx)

			assert.Equal(t, tt.price, d.Price["Car A"])
			assert.Equal(t, tt.discount, d.Discount["Car A"])
		})
	}
}

func TestThresholdPolicy_PriceFlooredAtZero(t *testing.T) {
	ctx := contextFor(t, testutil.SingleCarLot("Car A", 20, 4, 30), 50)
	p := NewThresholdPolicy(DefaultSeasonalThresholds())

	assert.Equal(t, 0.0, p.Decide(ctx).Price["Car A"])
}

func TestThresholdPolicy_CarWithoutThreshold_NotRestocked(t *testing.T) {
	ctx := contextFor(t, testutil.SingleCarLot("Car Z", 0, 4, 1000), 50)
	p := NewThresholdPolicy(DefaultSeasonalThresholds())

	d := p.Decide(ctx)

	assert.Equal(t, 0, d.Restock["Car Z"])
	assert.Equal(t, 950.0, d.Price["Car Z"])
}

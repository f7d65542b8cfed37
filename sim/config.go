package sim

import (
	"fmt"
	"strings"
)

// ModelConfig groups the constructor-level parameters of a Model.
// Zero-valued fields are NOT replaced with defaults; start from
// DefaultModelConfig and override.
type ModelConfig struct {
	Horizon             int                `yaml:"horizon"`               // number of steps T (must be > 0)
	Seed                int64              `yaml:"seed"`                  // random stream seed
	HoldingCost         float64            `yaml:"holding_cost"`          // base per-unit-per-period holding cost
	BaseProfit          float64            `yaml:"base_profit"`           // carried for reporting; not used by the objective
	DiscountRate        float64            `yaml:"discount_rate"`         // flat discount applied to long-held cars by policies
	MaxInventory        int                `yaml:"max_inventory"`         // lot capacity across the fleet
	SeasonalHoldingCost map[string]float64 `yaml:"seasonal_holding_cost"` // trend label (lowercase) -> holding rate override
	Alpha               float64            `yaml:"alpha"`                 // demand-variance smoothing factor in [0, 1]
	RestockUnitCost     float64            `yaml:"restock_unit_cost"`     // fixed cost per restocked unit
	DemandNoiseStdDev   float64            `yaml:"demand_noise_stddev"`   // std dev of demand around forecast
	FallbackNoiseStdDev float64            `yaml:"fallback_noise_stddev"` // std dev used when no market row exists
	ForecastDriftRate   float64            `yaml:"forecast_drift_rate"`   // linear forecast growth per elapsed period
	ReferenceYear       int                `yaml:"reference_year"`        // year used to build market-trend period keys
	RequireMarketTrends bool               `yaml:"require_market_trends"` // fail construction without a market table
}

// DefaultModelConfig returns the stock dealership configuration.
func DefaultModelConfig() ModelConfig {
	return ModelConfig{
		Horizon:             30,
		Seed:                42,
		HoldingCost:         85,
		BaseProfit:          1500,
		DiscountRate:        0.05,
		MaxInventory:        100,
		SeasonalHoldingCost: map[string]float64{"winter": 90, "summer": 70},
		Alpha:               0.1,
		RestockUnitCost:     300,
		DemandNoiseStdDev:   10,
		FallbackNoiseStdDev: 5,
		ForecastDriftRate:   0.1,
		ReferenceYear:       2023,
	}
}

// Validate checks parameter ranges.
func (c ModelConfig) Validate() error {
	if c.Horizon <= 0 {
		return fmt.Errorf("horizon must be positive, got %d", c.Horizon)
	}
	if c.MaxInventory < 0 {
		return fmt.Errorf("max_inventory must be non-negative, got %d", c.MaxInventory)
	}
	if c.HoldingCost < 0 {
		return fmt.Errorf("holding_cost must be non-negative, got %f", c.HoldingCost)
	}
	if c.DiscountRate < 0 {
		return fmt.Errorf("discount_rate must be non-negative, got %f", c.DiscountRate)
	}
	if c.Alpha < 0 || c.Alpha > 1 {
		return fmt.Errorf("alpha must be in [0, 1], got %f", c.Alpha)
	}
	if c.RestockUnitCost < 0 {
		return fmt.Errorf("restock_unit_cost must be non-negative, got %f", c.RestockUnitCost)
	}
	if c.DemandNoiseStdDev < 0 || c.FallbackNoiseStdDev < 0 {
		return fmt.Errorf("noise standard deviations must be non-negative, got %f and %f",
			c.DemandNoiseStdDev, c.FallbackNoiseStdDev)
	}
	if c.ForecastDriftRate < 0 {
		return fmt.Errorf("forecast_drift_rate must be non-negative, got %f", c.ForecastDriftRate)
	}
	for label, rate := range c.SeasonalHoldingCost {
		if rate < 0 {
			return fmt.Errorf("seasonal_holding_cost[%s] must be non-negative, got %f", label, rate)
		}
	}
	return nil
}

// normalizedSeasonalCosts lowercases the seasonal override labels. Two labels
// that differ only in case must agree on the rate.
func (c ModelConfig) normalizedSeasonalCosts() (map[string]float64, error) {
	out := make(map[string]float64, len(c.SeasonalHoldingCost))
	for label, rate := range c.SeasonalHoldingCost {
		key := strings.ToLower(label)
		if prev, ok := out[key]; ok && prev != rate {
			return nil, fmt.Errorf("seasonal_holding_cost has conflicting rates for %q", key)
		}
		out[key] = rate
	}
	return out, nil
}

// seasonalHoldingRate looks up the holding rate for a trend label,
// case-insensitively, falling back to the base holding cost. Expects
// normalized seasonal keys.
func (c ModelConfig) seasonalHoldingRate(trend Trend) float64 {
	if rate, ok := c.SeasonalHoldingCost[strings.ToLower(string(trend))]; ok {
		return rate
	}
	return c.HoldingCost
}

// Package testutil provides shared test infrastructure for the dealership
// simulator: canned lots, model construction and invariant assertions used
// across the sim/ sub-package tests.
package testutil

import (
	"testing"

	"github.com/dealer-sim/dealer-sim/sim"
)

// ThreeCarLot returns a three-car starting lot with comfortable stock.
func ThreeCarLot() sim.InitialState {
	return sim.InitialState{
		Fleet:           []sim.CarModel{"Car A", "Car B", "Car C"},
		InventoryLevel:  map[sim.CarModel]int{"Car A": 20, "Car B": 15, "Car C": 10},
		HoldingTime:     map[sim.CarModel]int{"Car A": 0, "Car B": 3, "Car C": 12},
		CompetitorPrice: map[sim.CarModel]float64{"Car A": 20000, "Car B": 30000, "Car C": 15000},
		DemandForecast:  map[sim.CarModel]float64{"Car A": 5, "Car B": 4, "Car C": 3},
	}
}

// SingleCarLot returns a one-car lot.
func SingleCarLot(car sim.CarModel, inventory int, forecast, price float64) sim.InitialState {
	return sim.InitialState{
		Fleet:           []sim.CarModel{car},
		InventoryLevel:  map[sim.CarModel]int{car: inventory},
		HoldingTime:     map[sim.CarModel]int{car: 0},
		CompetitorPrice: map[sim.CarModel]float64{car: price},
		DemandForecast:  map[sim.CarModel]float64{car: forecast},
	}
}

// NewModel builds a model from s0 with the default config adjusted by
// mutate (which may be nil). Fails the test on error.
func NewModel(t *testing.T, s0 sim.InitialState, mutate func(*sim.ModelConfig)) *sim.Model {
	t.Helper()
	cfg := sim.DefaultModelConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	m, err := sim.NewModel(s0, cfg, nil)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	return m
}

// AssertNonNegative fails the test if any per-car quantity in state is negative.
func AssertNonNegative(t *testing.T, state sim.State) {
	t.Helper()
	for _, car := range state.Fleet() {
		if state.Inventory(car) < 0 {
			t.Errorf("inventory of %s is negative: %d", car, state.Inventory(car))
		}
		if state.HoldingTime(car) < 0 {
			t.Errorf("holding time of %s is negative: %d", car, state.HoldingTime(car))
		}
		if state.CompetitorPrice(car) < 0 {
			t.Errorf("competitor price of %s is negative: %f", car, state.CompetitorPrice(car))
		}
		if state.DemandForecast(car) < 0 {
			t.Errorf("demand forecast of %s is negative: %f", car, state.DemandForecast(car))
		}
	}
}

// AssertDecisionNonNegative fails the test if any restock, price or discount is negative.
func AssertDecisionNonNegative(t *testing.T, fleet []sim.CarModel, d sim.Decision) {
	t.Helper()
	for _, car := range fleet {
		if d.Restock(car) < 0 || d.Price(car) < 0 || d.Discount(car) < 0 {
			t.Errorf("negative decision for %s: restock=%d price=%f discount=%f",
				car, d.Restock(car), d.Price(car), d.Discount(car))
		}
	}
}

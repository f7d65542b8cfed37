package dataset

import (
	"fmt"
	"io"
	"os"

	"github.com/dealer-sim/dealer-sim/sim"
)

// Column names of the initial-state export.
const (
	ColModel       = "Model"
	ColStock       = "Number in Stock"
	ColHoldingTime = "Holding_Time(Week)"
	ColPrice       = "Selling_Price"
)

// DefaultDemandForecast is the per-car forecast assigned when the export has
// no forecast column.
const DefaultDemandForecast = 10.0

// ReadInitialState parses an initial-state export. The fleet keeps the row
// order of the file; every car starts with a stable trend and the default
// demand forecast.
func ReadInitialState(r io.Reader) (sim.InitialState, error) {
	t, err := readTable(r, ColModel, ColStock, ColHoldingTime, ColPrice)
	if err != nil {
		return sim.InitialState{}, err
	}

	s0 := sim.InitialState{
		InventoryLevel:  make(map[sim.CarModel]int),
		HoldingTime:     make(map[sim.CarModel]int),
		CompetitorPrice: make(map[sim.CarModel]float64),
		MarketTrends:    make(map[sim.CarModel]sim.Trend),
		DemandForecast:  make(map[sim.CarModel]float64),
	}
	for i, row := range t.rows {
		line := i + 2
		car := sim.CarModel(t.get(row, ColModel))
		if car == "" {
			return sim.InitialState{}, fmt.Errorf("line %d: empty model name", line)
		}
		if _, dup := s0.InventoryLevel[car]; dup {
			return sim.InitialState{}, fmt.Errorf("line %d: duplicate model %q", line, car)
		}
		stock, err := t.integer(row, ColStock, line)
		if err != nil {
			return sim.InitialState{}, err
		}
		held, err := t.integer(row, ColHoldingTime, line)
		if err != nil {
			return sim.InitialState{}, err
		}
		price, err := ParsePrice(t.get(row, ColPrice))
		if err != nil {
			return sim.InitialState{}, fmt.Errorf("line %d: %w", line, err)
		}

		s0.Fleet = append(s0.Fleet, car)
		s0.InventoryLevel[car] = stock
		s0.HoldingTime[car] = held
		s0.CompetitorPrice[car] = price
		s0.MarketTrends[car] = sim.TrendStable
		s0.DemandForecast[car] = DefaultDemandForecast
	}
	return s0, nil
}

// LoadInitialState reads an initial-state export from path.
func LoadInitialState(path string) (sim.InitialState, error) {
	f, err := os.Open(path)
	if err != nil {
		return sim.InitialState{}, fmt.Errorf("opening initial state: %w", err)
	}
	defer f.Close()
	s0, err := ReadInitialState(f)
	if err != nil {
		return sim.InitialState{}, fmt.Errorf("loading initial state %s: %w", path, err)
	}
	return s0, nil
}

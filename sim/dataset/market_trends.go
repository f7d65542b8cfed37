package dataset

import (
	"fmt"
	"io"
	"os"

	"github.com/dealer-sim/dealer-sim/sim"
)

// Column names of the market-trend export.
const (
	ColMonth              = "Month"
	ColDemandIndex        = "Demand_Index"
	ColPriceTrend         = "Price_Trend"
	ColCompetitorActivity = "Competitor_Activity"
	ColSeason             = "Season"
)

// ReadMarketTrends parses a market-trend export into rows keyed by month
// ("YYYY-MM") and model.
func ReadMarketTrends(r io.Reader) ([]sim.TrendRow, error) {
	t, err := readTable(r, ColMonth, ColModel, ColDemandIndex, ColPriceTrend, ColCompetitorActivity, ColSeason)
	if err != nil {
		return nil, err
	}
	rows := make([]sim.TrendRow, 0, len(t.rows))
	for i, row := range t.rows {
		line := i + 2
		demandIndex, err := t.float(row, ColDemandIndex, line)
		if err != nil {
			return nil, err
		}
		priceTrend, err := t.float(row, ColPriceTrend, line)
		if err != nil {
			return nil, err
		}
		activity, err := t.float(row, ColCompetitorActivity, line)
		if err != nil {
			return nil, err
		}
		rows = append(rows, sim.TrendRow{
			Period:             t.get(row, ColMonth),
			Car:                sim.CarModel(t.get(row, ColModel)),
			DemandIndex:        demandIndex,
			PriceTrend:         priceTrend,
			CompetitorActivity: activity,
			Season:             t.get(row, ColSeason),
		})
	}
	return rows, nil
}

// LoadMarketTable reads a market-trend export from path and indexes it.
func LoadMarketTable(path string) (*sim.MarketTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening market trends: %w", err)
	}
	defer f.Close()
	rows, err := ReadMarketTrends(f)
	if err != nil {
		return nil, fmt.Errorf("loading market trends %s: %w", path, err)
	}
	return sim.NewMarketTable(rows), nil
}

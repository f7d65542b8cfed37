package sim

import (
	"errors"
	"math"

	"github.com/sirupsen/logrus"
)

// ExogInfo realises the demand, competitor prices and trends for the current
// period. Per car, in fleet order:
//   - with a market row: demand ~ N(forecast, DemandNoiseStdDev) floored at 0,
//     competitor price moved by the row's price trend and competitor activity,
//     trend set to the row's season;
//   - without one: demand = forecast + N(0, FallbackNoiseStdDev) floored at 0,
//     price unchanged, trend stable.
//
// Demand is capped at twice the forecast. The decision does not influence the
// draw. A missing row is never an error here; NewModel already rejects a
// required reference that was not supplied.
func (m *Model) ExogInfo(_ Decision) (ExogenousInfo, error) {
	period := PeriodKey(m.cfg.ReferenceYear, m.t)

	exog := ExogenousInfo{
		Demand:           make(map[CarModel]float64, len(m.fleet)),
		CompetitorPrices: make(map[CarModel]float64, len(m.fleet)),
		MarketTrends:     make(map[CarModel]Trend, len(m.fleet)),
	}
	for _, car := range m.fleet {
		forecast := m.state.demandForecast[car]
		price := m.state.competitorPrice[car]

		var demand float64
		row, err := m.market.Lookup(period, car)
		switch {
		case err == nil:
			demand = math.Max(0, m.stream.Normal(forecast, m.cfg.DemandNoiseStdDev))
			exog.CompetitorPrices[car] = math.Max(0, price+row.PriceTrend-row.CompetitorActivity)
			exog.MarketTrends[car] = Trend(row.Season)
		case isDataError(err):
			logrus.Tracef("stable fallback for %q: %v", car, err)
			demand = math.Max(0, forecast+m.stream.Normal(0, m.cfg.FallbackNoiseStdDev))
			exog.CompetitorPrices[car] = price
			exog.MarketTrends[car] = TrendStable
		default:
			return ExogenousInfo{}, err
		}
		exog.Demand[car] = math.Min(demand, 2*forecast)
	}
	return exog, nil
}

func isDataError(err error) bool {
	var de *DataError
	return errors.As(err, &de)
}

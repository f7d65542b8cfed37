package trace

import (
	"encoding/csv"
	"io"
	"strconv"
)

var ledgerHeader = []string{
	"iteration",
	"t",
	"terminal",
	"cumulative_objective",
	"car",
	"inventory_level",
	"holding_time",
	"competitor_price",
	"market_trend",
	"demand_forecast",
	"restock",
	"price",
	"discount",
	"cars_sold",
	"cars_added",
	"step_profit",
}

// WriteCSV writes the step records as a ledger with one row per car per step.
func WriteCSV(w io.Writer, st *SimulationTrace) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ledgerHeader); err != nil {
		return err
	}
	if st != nil {
		for _, r := range st.Steps {
			for _, car := range r.State.Fleet() {
				row := []string{
					strconv.Itoa(r.Iteration),
					strconv.Itoa(r.T),
					strconv.FormatBool(r.Terminal),
					fmtFloat(r.CumulativeObjective),
					string(car),
					strconv.Itoa(r.State.Inventory(car)),
					strconv.Itoa(r.State.HoldingTime(car)),
					fmtFloat(r.State.CompetitorPrice(car)),
					string(r.State.MarketTrend(car)),
					fmtFloat(r.State.DemandForecast(car)),
					strconv.Itoa(r.Decision.Restock(car)),
					fmtFloat(r.Decision.Price(car)),
					fmtFloat(r.Decision.Discount(car)),
					strconv.Itoa(r.CarsSold[car]),
					strconv.Itoa(r.CarsAdded[car]),
					fmtFloat(r.Profit.Total),
				}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

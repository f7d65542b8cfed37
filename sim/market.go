package sim

import "fmt"

// TrendRow is one market-trend observation for a car in a period.
type TrendRow struct {
	Period             string   // "YYYY-MM"
	Car                CarModel // car model the row describes
	DemandIndex        float64  // relative demand level; informational
	PriceTrend         float64  // added to the competitor price
	CompetitorActivity float64  // subtracted from the competitor price
	Season             string   // becomes the car's trend label for the period
}

type marketKey struct {
	period string
	car    CarModel
}

// MarketTable is the time-indexed market-trend reference, queried by
// (period, car). It is read-only once built and may be shared by clones.
type MarketTable struct {
	rows map[marketKey]TrendRow
}

// NewMarketTable indexes rows by (period, car). When the same key appears
// more than once, the first row wins.
func NewMarketTable(rows []TrendRow) *MarketTable {
	t := &MarketTable{rows: make(map[marketKey]TrendRow, len(rows))}
	for _, r := range rows {
		k := marketKey{period: r.Period, car: r.Car}
		if _, dup := t.rows[k]; dup {
			continue
		}
		t.rows[k] = r
	}
	return t
}

// Lookup returns the row for (period, car), or a *DataError when the
// reference has no such row.
func (t *MarketTable) Lookup(period string, car CarModel) (TrendRow, error) {
	if t == nil {
		return TrendRow{}, &DataError{Period: period, Car: car, Reason: "no market-trend reference loaded"}
	}
	row, ok := t.rows[marketKey{period: period, car: car}]
	if !ok {
		return TrendRow{}, &DataError{Period: period, Car: car, Reason: "no market-trend row"}
	}
	return row, nil
}

// Len returns the number of indexed rows.
func (t *MarketTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// PeriodKey maps a step index to the calendar month of the reference year,
// cycling every twelve steps: t=0 -> "2023-01", t=12 -> "2023-01".
func PeriodKey(referenceYear, t int) string {
	return fmt.Sprintf("%04d-%02d", referenceYear, t%12+1)
}

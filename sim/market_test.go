package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodKey_CyclesMonthly(t *testing.T) {
	tests := []struct {
		t    int
		want string
	}{
		{0, "2023-01"},
		{5, "2023-06"},
		{11, "2023-12"},
		{12, "2023-01"},
		{29, "2023-06"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PeriodKey(2023, tt.t), "t=%d", tt.t)
	}
}

func TestMarketTable_Lookup(t *testing.T) {
	table := NewMarketTable([]TrendRow{
		{Period: "2023-01", Car: "Car A", PriceTrend: 10, Season: "Winter"},
		{Period: "2023-01", Car: "Car A", PriceTrend: 99, Season: "Summer"},
		{Period: "2023-02", Car: "Car A", PriceTrend: 20, Season: "Winter"},
	})

	assert.Equal(t, 2, table.Len())

	row, err := table.Lookup("2023-01", "Car A")
	require.NoError(t, err)
	assert.Equal(t, 10.0, row.PriceTrend, "first duplicate wins")

	_, err = table.Lookup("2023-03", "Car A")
	var de *DataError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "2023-03", de.Period)
	assert.Equal(t, CarModel("Car A"), de.Car)
}

func TestMarketTable_NilTable_ReturnsDataError(t *testing.T) {
	var table *MarketTable

	_, err := table.Lookup("2023-01", "Car A")

	var de *DataError
	assert.True(t, errors.As(err, &de))
	assert.Equal(t, 0, table.Len())
}

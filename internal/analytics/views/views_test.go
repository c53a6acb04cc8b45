package views

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vishal-24-1/demodashboard/internal/sales"
)

func sale(product, style, size, date string, final, cost float64, sold, initial int) sales.Record {
	return sales.Record{
		ProductID:       product,
		StyleID:         style,
		Size:            size,
		Color:           "Black",
		Date:            sales.ParseDate(date),
		RawDate:         date,
		FinalPrice:      final,
		CostPrice:       cost,
		QuantitySold:    sold,
		InitialQuantity: initial,
	}
}

func TestSalesThroughRateSumsPerProduct(t *testing.T) {
	records := []sales.Record{
		sale("P1", "S1", "M", "01-01-2024", 100, 50, 4, 6),
		sale("P1", "S1", "L", "02-01-2024", 100, 50, 4, 4),
	}

	rows := SalesThroughRate(records)

	require.Len(t, rows, 1)
	assert.Equal(t, "P1", rows[0].ProductID)
	assert.InDelta(t, 0.8, rows[0].Rate, 1e-12)
	assert.Equal(t, 8, rows[0].QuantitySold)
	assert.Equal(t, 10, rows[0].Initial)
	assert.Equal(t, "80.00%", rows[0].Percent())
}

func TestSalesThroughRateZeroInitialStock(t *testing.T) {
	records := []sales.Record{
		sale("P1", "S1", "M", "01-01-2024", 100, 50, 0, 0),
		sale("P2", "S1", "M", "01-01-2024", 100, 50, 1, 4),
	}

	rows := SalesThroughRate(records)

	require.Len(t, rows, 2)
	assert.Equal(t, "P2", rows[0].ProductID)
	assert.Equal(t, "P1", rows[1].ProductID)
	assert.Zero(t, rows[1].Rate)
}

func TestSalesCountTopTen(t *testing.T) {
	records := make([]sales.Record, 0, 12)
	for i := 0; i < 12; i++ {
		records = append(records, sale(fmt.Sprintf("P%02d", i), "S", "M", "01-01-2024", 10, 5, i, 20))
	}

	rows := SalesCount(records)

	require.Len(t, rows, 10)
	assert.Equal(t, "P11", rows[0].ProductID)
	assert.Equal(t, 11, rows[0].QuantitySold)
	assert.Equal(t, "P02", rows[9].ProductID)
	for i := 1; i < len(rows); i++ {
		assert.GreaterOrEqual(t, rows[i-1].QuantitySold, rows[i].QuantitySold)
	}
}

func TestProfitByStyleSize(t *testing.T) {
	records := []sales.Record{
		sale("P1", "S1", "M", "01-01-2024", 100, 60, 2, 10),
		sale("P2", "S2", "L", "01-01-2024", 50, 10, 5, 10),
		sale("P3", "S1", "L", "01-01-2024", 100, 90, 1, 10),
		sale("P4", "S1", "M", "02-01-2024", 100, 80, 1, 10),
	}

	rows := ProfitByStyleSize(records)

	require.Len(t, rows, 2)
	assert.Equal(t, "S2", rows[0].StyleID)
	assert.Equal(t, 200.0, rows[0].Total)
	assert.Equal(t, "S1", rows[1].StyleID)
	assert.Equal(t, 110.0, rows[1].Total)
	assert.Equal(t, []SizeProfit{{Size: "M", Profit: 100}, {Size: "L", Profit: 10}}, rows[1].Sizes)

	_, ok := rows[0].Profit("M")
	assert.False(t, ok, "unobserved sizes must not be present")
}

func TestProfitRowJSONIsFlat(t *testing.T) {
	row := ProfitRow{StyleID: "S1", Total: 12.5, Sizes: []SizeProfit{{"XL", 10}, {"S", 2.5}}}

	raw, err := json.Marshal(row)
	require.NoError(t, err)
	assert.Equal(t, `{"style_id":"S1","XL":10,"S":2.5}`, string(raw))
}

func TestSalesTrendAscending(t *testing.T) {
	records := []sales.Record{
		sale("P1", "S", "M", "31-01-2024", 10, 5, 20, 50),
		sale("P2", "S", "M", "01-01-2024", 20, 5, 5, 50),
		sale("P3", "S", "M", "15-12-2023", 10, 5, 1, 50),
		sale("P4", "S", "M", "01-01-2024", 10, 5, 2, 50),
	}

	points := SalesTrend(records)

	require.Len(t, points, 3)
	assert.Equal(t, "2023-12-15", points[0].Date)
	assert.Equal(t, "2024-01-01", points[1].Date)
	assert.Equal(t, 120.0, points[1].TotalSales)
	assert.Equal(t, 7, points[1].TotalQuantitySold)
	assert.Equal(t, "2024-01-31", points[2].Date)
}

func TestZeroFinalPriceFlowsThroughViews(t *testing.T) {
	records := []sales.Record{sale("P1", "S1", "M", "01-01-2024", 0, 10, 3, 5)}

	assert.NotPanics(t, func() {
		rows := ProfitByStyleSize(records)
		require.Len(t, rows, 1)
		assert.Equal(t, -30.0, rows[0].Total)
		k := ComputeKPIs(records)
		assert.Equal(t, -30.0, k.AverageProfit)
	})
}

func TestComputeKPIs(t *testing.T) {
	records := []sales.Record{
		sale("P1", "S1", "M", "01-01-2024", 100, 60, 2, 10),
		sale("P1", "S1", "L", "01-01-2024", 50, 20, 1, 10),
		sale("P2", "S2", "L", "01-01-2024", 10, 5, 0, 10),
	}

	k := ComputeKPIs(records)

	assert.Equal(t, 2, k.DistinctProducts)
	assert.Equal(t, 250.0, k.TotalRevenue)
	assert.InDelta(t, 110.0/3, k.AverageProfit, 1e-9)

	cards := k.Display("₹")
	assert.Equal(t, []KPICard{
		{Title: KPIDistinctProducts, Value: "2"},
		{Title: KPITotalRevenue, Value: "₹250.00"},
		{Title: KPIAverageProfit, Value: "₹36.67"},
	}, cards)
}

func TestComputeKPIsEmpty(t *testing.T) {
	k := ComputeKPIs(nil)
	assert.Equal(t, KPIs{}, k)
	assert.Equal(t, "₹0.00", k.Display("₹")[1].Value)
}

func TestEmptyViews(t *testing.T) {
	assert.Empty(t, SalesThroughRate(nil))
	assert.Empty(t, SalesCount(nil))
	assert.Empty(t, ProfitByStyleSize(nil))
	assert.Empty(t, SalesTrend(nil))
}

func TestDistinctSizes(t *testing.T) {
	records := []sales.Record{
		sale("P1", "S", "M", "01-01-2024", 1, 1, 1, 1),
		sale("P2", "S", "XL", "bad", 1, 1, 1, 1),
		sale("P3", "S", "M", "01-01-2024", 1, 1, 1, 1),
		sale("P4", "S", "S", "01-01-2024", 1, 1, 1, 1),
	}

	assert.Equal(t, []string{"M", "XL", "S"}, DistinctSizes(records))
}

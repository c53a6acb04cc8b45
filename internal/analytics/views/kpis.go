package views

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/vishal-24-1/demodashboard/internal/sales"
)

// KPI card titles.
const (
	KPIDistinctProducts = "Distinct Product Count"
	KPITotalRevenue     = "Total Final Price"
	KPIAverageProfit    = "Average Profit"
)

type KPIs struct {
	DistinctProducts int     `json:"distinct_products"`
	TotalRevenue     float64 `json:"total_revenue"`
	AverageProfit    float64 `json:"average_profit"`
}

// ComputeKPIs derives the scalar cards. AverageProfit divides by the record
// count, not the product count, and is zero for an empty set.
func ComputeKPIs(records []sales.Record) KPIs {
	products := map[string]struct{}{}
	var k KPIs
	totalProfit := 0.0
	for _, rec := range records {
		products[rec.ProductID] = struct{}{}
		k.TotalRevenue += rec.Revenue()
		totalProfit += rec.Profit()
	}
	k.DistinctProducts = len(products)
	if len(records) > 0 {
		k.AverageProfit = totalProfit / float64(len(records))
	}
	return k
}

// KPICard is one rendered card.
type KPICard struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

// Display renders the cards with monetary values fixed to two decimals and
// prefixed by currency.
func (k KPIs) Display(currency string) []KPICard {
	return []KPICard{
		{Title: KPIDistinctProducts, Value: strconv.Itoa(k.DistinctProducts)},
		{Title: KPITotalRevenue, Value: currency + fixed2(k.TotalRevenue)},
		{Title: KPIAverageProfit, Value: currency + fixed2(k.AverageProfit)},
	}
}

func fixed2(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}

func percentString(rate float64) string {
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return strconv.FormatFloat(rate*100, 'f', 2, 64) + "%"
	}
	return decimal.NewFromFloat(rate).Shift(2).StringFixed(2) + "%"
}

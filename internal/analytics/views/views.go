// Package views computes the ranked and bucketed datasets rendered by the
// dashboard charts. Every function is pure over the filtered record set.
package views

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/vishal-24-1/demodashboard/internal/analytics/aggregate"
	"github.com/vishal-24-1/demodashboard/internal/sales"
)

func productKey(r sales.Record) string { return r.ProductID }
func styleKey(r sales.Record) string   { return r.StyleID }
func sizeKey(r sales.Record) string    { return r.Size }

func quantitySold(r sales.Record) float64    { return float64(r.QuantitySold) }
func quantityInitial(r sales.Record) float64 { return float64(r.InitialQuantity) }
func profit(r sales.Record) float64          { return r.Profit() }

// SalesThroughRateRow is one bar of the sales-through chart.
type SalesThroughRateRow struct {
	ProductID    string  `json:"product_id"`
	Rate         float64 `json:"sales_through_rate"`
	QuantitySold int     `json:"quantity_sold"`
	Initial      int     `json:"initial_quantity"`
}

// Percent renders the rate the way the chart tooltip shows it.
func (r SalesThroughRateRow) Percent() string {
	return percentString(r.Rate)
}

// SalesThroughRate ranks products by ΣQuantitySold / ΣInitialQuantity. A
// product with no initial stock has a rate of zero.
func SalesThroughRate(records []sales.Record) []SalesThroughRateRow {
	sold := aggregate.Group(records, productKey, quantitySold)
	initial := aggregate.Group(records, productKey, quantityInitial)

	rates := aggregate.NewGroups()
	for _, id := range sold.Keys() {
		s, _ := sold.Get(id)
		i, _ := initial.Get(id)
		rate := 0.0
		if i != 0 {
			rate = s / i
		}
		rates.Add(id, rate)
	}

	ranked := aggregate.Rank(rates, aggregate.TopN)
	out := make([]SalesThroughRateRow, 0, len(ranked))
	for _, r := range ranked {
		s, _ := sold.Get(r.Key)
		i, _ := initial.Get(r.Key)
		out = append(out, SalesThroughRateRow{
			ProductID:    r.Key,
			Rate:         r.Value,
			QuantitySold: int(s),
			Initial:      int(i),
		})
	}
	return out
}

type SalesCountRow struct {
	ProductID    string `json:"product_id"`
	QuantitySold int    `json:"quantity_sold"`
}

// SalesCount ranks products by units sold.
func SalesCount(records []sales.Record) []SalesCountRow {
	ranked := aggregate.Rank(aggregate.Group(records, productKey, quantitySold), aggregate.TopN)
	out := make([]SalesCountRow, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, SalesCountRow{ProductID: r.Key, QuantitySold: int(r.Value)})
	}
	return out
}

// SizeProfit is the profit one size contributed to a style.
type SizeProfit struct {
	Size   string
	Profit float64
}

// ProfitRow is one stacked bar: a style with the sizes actually sold for it.
type ProfitRow struct {
	StyleID string
	Total   float64
	Sizes   []SizeProfit
}

// Profit returns the profit recorded for size and whether the size was observed.
func (r ProfitRow) Profit(size string) (float64, bool) {
	for _, s := range r.Sizes {
		if s.Size == size {
			return s.Profit, true
		}
	}
	return 0, false
}

// MarshalJSON flattens the row to {"style_id": ..., "<size>": profit, ...}
// keeping size order.
func (r ProfitRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"style_id":`)
	id, err := json.Marshal(r.StyleID)
	if err != nil {
		return nil, err
	}
	buf.Write(id)
	for _, s := range r.Sizes {
		key, err := json.Marshal(s.Size)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(s.Profit)
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ProfitByStyleSize accumulates profit per style and size, then keeps the ten
// most profitable styles.
func ProfitByStyleSize(records []sales.Record) []ProfitRow {
	nested := aggregate.GroupNested(records, styleKey, sizeKey, profit)
	ranked := aggregate.Rank(nested.Totals(), aggregate.TopN)

	out := make([]ProfitRow, 0, len(ranked))
	for _, r := range ranked {
		inner := nested.Inner(r.Key)
		row := ProfitRow{StyleID: r.Key, Total: r.Value}
		for _, size := range inner.Keys() {
			v, _ := inner.Get(size)
			row.Sizes = append(row.Sizes, SizeProfit{Size: size, Profit: v})
		}
		out = append(out, row)
	}
	return out
}

// TrendPoint is one day of the sales trend line.
type TrendPoint struct {
	Date              string  `json:"date"`
	TotalSales        float64 `json:"total_sales"`
	TotalQuantitySold int     `json:"total_quantity_sold"`
}

// SalesTrend buckets revenue and units by calendar day, ascending.
func SalesTrend(records []sales.Record) []TrendPoint {
	index := map[string]int{}
	days := map[string]sales.Date{}
	out := []TrendPoint{}
	for _, rec := range records {
		key := rec.Date.ISO()
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			days[key] = rec.Date
			out = append(out, TrendPoint{Date: key})
		}
		out[i].TotalSales += rec.Revenue()
		out[i].TotalQuantitySold += rec.QuantitySold
	}
	sort.SliceStable(out, func(i, j int) bool {
		return days[out[i].Date].Before(days[out[j].Date])
	})
	return out
}

// DistinctSizes lists every Size in first-seen order. Callers pass the
// unfiltered record set so the chart legend does not change with the range.
func DistinctSizes(records []sales.Record) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, rec := range records {
		if _, ok := seen[rec.Size]; ok {
			continue
		}
		seen[rec.Size] = struct{}{}
		out = append(out, rec.Size)
	}
	return out
}

package insights

import (
	"fmt"
	"strings"

	"github.com/vishal-24-1/demodashboard/internal/analytics/aggregate"
	"github.com/vishal-24-1/demodashboard/internal/analytics/views"
	"github.com/vishal-24-1/demodashboard/internal/sales"
)

const (
	StepNoData              = "no_data"
	StepTopProducts         = "top_products"
	StepProfitMargins       = "profit_margins"
	StepLowStock            = "low_stock"
	StepTopSizes            = "top_sizes"
	StepBestSellerBreakdown = "best_seller_breakdown"
	StepSalesTrend          = "sales_trend"
)

const (
	topListSize       = 3
	lowStockThreshold = 10
)

// Default returns the dashboard's insight rules in display order.
func Default() *Pipeline {
	return NewPipeline(
		NewStep(StepTopProducts, TopProducts),
		NewStep(StepProfitMargins, ProfitMargins),
		NewStep(StepLowStock, LowStock),
		NewStep(StepTopSizes, TopSizes),
		NewStep(StepBestSellerBreakdown, BestSellerBreakdown),
		NewStep(StepSalesTrend, SalesTrend),
	)
}

func productKey(r sales.Record) string { return r.ProductID }
func sizeKey(r sales.Record) string    { return r.Size }
func colorKey(r sales.Record) string   { return r.Color }

func quantitySold(r sales.Record) float64  { return float64(r.QuantitySold) }
func marginPercent(r sales.Record) float64 { return r.MarginPercent() }

func topByQuantity(records []sales.Record, key aggregate.KeyFunc, n int) []string {
	return aggregate.Top(aggregate.Group(records, key, quantitySold), n)
}

// TopProducts names the three best-selling products by units.
func TopProducts(records []sales.Record) (string, bool) {
	top := topByQuantity(records, productKey, topListSize)
	if len(top) == 0 {
		return "", false
	}
	return fmt.Sprintf("Top-selling products: %s.", strings.Join(top, ", ")), true
}

// ProfitMargins sums each record's margin percentage per product and names the
// three highest. A zero FinalPrice yields a non-finite margin that ranks
// according to aggregate.Rank.
func ProfitMargins(records []sales.Record) (string, bool) {
	top := aggregate.Top(aggregate.Group(records, productKey, marginPercent), topListSize)
	if len(top) == 0 {
		return "", false
	}
	return fmt.Sprintf("Products with highest profit margins: %s.", strings.Join(top, ", ")), true
}

// LowStock lists products with a record holding fewer than ten units remaining.
func LowStock(records []sales.Record) (string, bool) {
	seen := map[string]struct{}{}
	var low []string
	for _, rec := range records {
		if rec.Remaining() >= lowStockThreshold {
			continue
		}
		if _, ok := seen[rec.ProductID]; ok {
			continue
		}
		seen[rec.ProductID] = struct{}{}
		low = append(low, rec.ProductID)
	}
	if len(low) == 0 {
		return "", false
	}
	return fmt.Sprintf("Products with low stock: %s. Consider restocking.", strings.Join(low, ", ")), true
}

// TopSizes names the three sizes with the most units sold.
func TopSizes(records []sales.Record) (string, bool) {
	top := topByQuantity(records, sizeKey, topListSize)
	if len(top) == 0 {
		return "", false
	}
	return fmt.Sprintf("Top selling sizes: %s.", strings.Join(top, ", ")), true
}

// SalesTrend compares units sold on the first and last day of the set. It
// needs at least two distinct days.
func SalesTrend(records []sales.Record) (string, bool) {
	points := views.SalesTrend(records)
	if len(points) < 2 {
		return "", false
	}
	first, last := points[0], points[len(points)-1]
	direction := "decreased"
	if last.TotalQuantitySold >= first.TotalQuantitySold {
		direction = "increased"
	}
	return fmt.Sprintf("Sales have %s over the selected period, from %d units on %s to %d units on %s.",
		direction, first.TotalQuantitySold, first.Date, last.TotalQuantitySold, last.Date), true
}

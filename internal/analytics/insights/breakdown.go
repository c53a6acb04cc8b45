package insights

import (
	"fmt"

	"github.com/vishal-24-1/demodashboard/internal/analytics/aggregate"
	"github.com/vishal-24-1/demodashboard/internal/sales"
)

// Breakdown is the drill-down from the best-selling product into its leading
// size and, within that size, its leading color. Depth counts how many levels
// resolved.
type Breakdown struct {
	Product string
	Size    string
	Color   string
	Depth   int
}

// drillStep narrows records to the top key of one dimension.
type drillStep struct {
	key aggregate.KeyFunc
	set func(*Breakdown, string)
}

var drillSteps = []drillStep{
	{key: productKey, set: func(b *Breakdown, v string) { b.Product = v }},
	{key: sizeKey, set: func(b *Breakdown, v string) { b.Size = v }},
	{key: colorKey, set: func(b *Breakdown, v string) { b.Color = v }},
}

// topOf returns the top key by units together with the records holding it.
func topOf(records []sales.Record, key aggregate.KeyFunc) (string, []sales.Record, bool) {
	top := topByQuantity(records, key, 1)
	if len(top) == 0 {
		return "", nil, false
	}
	subset := make([]sales.Record, 0, len(records))
	for _, rec := range records {
		if key(rec) == top[0] {
			subset = append(subset, rec)
		}
	}
	return top[0], subset, len(subset) > 0
}

// Drill resolves as many levels as the data allows, stopping at the first
// level that yields nothing.
func Drill(records []sales.Record) Breakdown {
	var b Breakdown
	subset := records
	for _, step := range drillSteps {
		value, next, ok := topOf(subset, step.key)
		if !ok {
			break
		}
		step.set(&b, value)
		b.Depth++
		subset = next
	}
	return b
}

func (b Breakdown) String() string {
	switch {
	case b.Depth >= 3:
		return fmt.Sprintf("The highest sold product is %s, with size %s contributing the most to its sales. Within this size, the color %s has the highest sales.", b.Product, b.Size, b.Color)
	case b.Depth == 2:
		return fmt.Sprintf("The highest sold product is %s, with size %s contributing the most to its sales.", b.Product, b.Size)
	case b.Depth == 1:
		return fmt.Sprintf("The highest sold product is %s.", b.Product)
	}
	return ""
}

// BestSellerBreakdown describes the best-selling product as deep as the drill
// down resolves.
func BestSellerBreakdown(records []sales.Record) (string, bool) {
	b := Drill(records)
	if b.Depth == 0 {
		return "", false
	}
	return b.String(), true
}

package sales

// Record is one point-of-sale line. Records are loaded once and passed by value;
// nothing in the engine mutates them.
type Record struct {
	ProductID       string
	StyleID         string
	Size            string
	Color           string
	Date            Date
	RawDate         string
	FinalPrice      float64
	CostPrice       float64
	QuantitySold    int
	InitialQuantity int
}

// Revenue is FinalPrice × QuantitySold.
func (r Record) Revenue() float64 {
	return r.FinalPrice * float64(r.QuantitySold)
}

// Profit is (FinalPrice − CostPrice) × QuantitySold.
func (r Record) Profit() float64 {
	return (r.FinalPrice - r.CostPrice) * float64(r.QuantitySold)
}

// MarginPercent is (FinalPrice − CostPrice) / FinalPrice × 100. A zero
// FinalPrice yields ±Inf or NaN, which callers propagate as-is.
func (r Record) MarginPercent() float64 {
	return (r.FinalPrice - r.CostPrice) / r.FinalPrice * 100
}

// Remaining is the stock left from the initial purchase.
func (r Record) Remaining() int {
	return r.InitialQuantity - r.QuantitySold
}

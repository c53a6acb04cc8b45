package models

// SalesRecord mirrors one row of the sales records table. Every column is read
// as text and validated at ingestion, so numeric columns may use any type the
// driver can render as a string. sale_date holds DD-MM-YYYY text.
type SalesRecord struct {
	ProductID       string `gorm:"column:product_id"`
	StyleID         string `gorm:"column:style_id"`
	Size            string `gorm:"column:size"`
	Color           string `gorm:"column:color"`
	SaleDate        string `gorm:"column:sale_date"`
	FinalPrice      string `gorm:"column:final_price"`
	CostPrice       string `gorm:"column:cost_price"`
	QuantitySold    string `gorm:"column:quantity_sold"`
	InitialQuantity string `gorm:"column:initial_quantity"`
}

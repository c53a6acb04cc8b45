package sales

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Canonical column names of the record set.
const (
	ColumnProductID       = "Product ID"
	ColumnStyleID         = "Style ID"
	ColumnSize            = "Size"
	ColumnColor           = "Color"
	ColumnDate            = "Date"
	ColumnFinalPrice      = "Final Price"
	ColumnCostPrice       = "Cost Price"
	ColumnQuantitySold    = "Quantity Sold"
	ColumnInitialQuantity = "Total Quantity Bought Initially"
)

// Columns lists the canonical columns in schema order.
var Columns = []string{
	ColumnProductID,
	ColumnStyleID,
	ColumnSize,
	ColumnColor,
	ColumnDate,
	ColumnFinalPrice,
	ColumnCostPrice,
	ColumnQuantitySold,
	ColumnInitialQuantity,
}

// columnAliases are accepted header spellings used by the SQL and BigQuery tables.
var columnAliases = map[string]string{
	"sale_date":        ColumnDate,
	"initial_quantity": ColumnInitialQuantity,
}

var columnsByKey = func() map[string]string {
	m := make(map[string]string, len(Columns)+len(columnAliases))
	for _, c := range Columns {
		m[columnKey(c)] = c
	}
	for alias, c := range columnAliases {
		m[columnKey(alias)] = c
	}
	return m
}()

// CanonicalColumn maps a header such as "product_id" or "PRODUCT ID" to its
// canonical name. Unknown headers return "", false.
func CanonicalColumn(header string) (string, bool) {
	c, ok := columnsByKey[columnKey(header)]
	return c, ok
}

func columnKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Row is one raw source row keyed by canonical column name.
type Row map[string]string

// RowFromHeaders zips a header line with a value line, dropping unknown columns.
func RowFromHeaders(headers, values []string) Row {
	row := make(Row, len(Columns))
	for i, h := range headers {
		col, ok := CanonicalColumn(h)
		if !ok || i >= len(values) {
			continue
		}
		row[col] = values[i]
	}
	return row
}

type recordInput struct {
	ProductID       string          `validate:"required" column:"Product ID"`
	StyleID         string          `validate:"required" column:"Style ID"`
	Size            string          `validate:"required" column:"Size"`
	Color           string          `validate:"required" column:"Color"`
	Date            string          `validate:"required" column:"Date"`
	FinalPrice      decimal.Decimal `validate:"gte=0" column:"Final Price"`
	CostPrice       decimal.Decimal `validate:"gte=0" column:"Cost Price"`
	QuantitySold    int64           `validate:"gte=0" column:"Quantity Sold"`
	InitialQuantity int64           `validate:"gte=0" column:"Total Quantity Bought Initially"`
}

// FieldError describes why one column of a row was rejected.
type FieldError struct {
	Line   int
	Column string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("row %d: %s %s", e.Line, e.Column, e.Reason)
}

// Decoder turns raw rows into validated records.
//
// Rows with missing identifiers or malformed numbers are rejected. Rows whose
// date does not parse are kept with an invalid Date unless StrictDates is set.
type Decoder struct {
	StrictDates bool
	validate    *validator.Validate
}

func NewDecoder(strictDates bool) *Decoder {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if tag := f.Tag.Get("column"); tag != "" {
			return tag
		}
		return f.Name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	return &Decoder{StrictDates: strictDates, validate: v}
}

// Decode validates one row. line is the 1-based position used in error messages.
func (d *Decoder) Decode(line int, row Row) (Record, error) {
	in := recordInput{
		ProductID: strings.TrimSpace(row[ColumnProductID]),
		StyleID:   strings.TrimSpace(row[ColumnStyleID]),
		Size:      strings.TrimSpace(row[ColumnSize]),
		Color:     strings.TrimSpace(row[ColumnColor]),
		Date:      strings.TrimSpace(row[ColumnDate]),
	}

	var err error
	if in.FinalPrice, err = parsePrice(row, ColumnFinalPrice); err != nil {
		return Record{}, &FieldError{Line: line, Column: ColumnFinalPrice, Reason: err.Error()}
	}
	if in.CostPrice, err = parsePrice(row, ColumnCostPrice); err != nil {
		return Record{}, &FieldError{Line: line, Column: ColumnCostPrice, Reason: err.Error()}
	}
	if in.QuantitySold, err = parseQuantity(row, ColumnQuantitySold); err != nil {
		return Record{}, &FieldError{Line: line, Column: ColumnQuantitySold, Reason: err.Error()}
	}
	if in.InitialQuantity, err = parseQuantity(row, ColumnInitialQuantity); err != nil {
		return Record{}, &FieldError{Line: line, Column: ColumnInitialQuantity, Reason: err.Error()}
	}

	if err := d.validate.Struct(in); err != nil {
		return Record{}, d.fieldError(line, err)
	}

	date := ParseDate(in.Date)
	if !date.Valid() && d.StrictDates {
		return Record{}, &FieldError{Line: line, Column: ColumnDate, Reason: "must use DD-MM-YYYY"}
	}

	return Record{
		ProductID:       in.ProductID,
		StyleID:         in.StyleID,
		Size:            in.Size,
		Color:           in.Color,
		Date:            date,
		RawDate:         in.Date,
		FinalPrice:      in.FinalPrice.InexactFloat64(),
		CostPrice:       in.CostPrice.InexactFloat64(),
		QuantitySold:    int(in.QuantitySold),
		InitialQuantity: int(in.InitialQuantity),
	}, nil
}

func (d *Decoder) fieldError(line int, err error) error {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return &FieldError{Line: line, Column: "row", Reason: err.Error()}
	}
	fe := errs[0]
	return &FieldError{Line: line, Column: fe.Field(), Reason: validationMessage(fe)}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	}
	return "is invalid"
}

func parseDecimal(row Row, column string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(row[column])
	if raw == "" {
		return decimal.Decimal{}, fmt.Errorf("is required")
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("must be a number")
	}
	return v, nil
}

// parsePrice rejects values that have no finite float64 form.
func parsePrice(row Row, column string) (decimal.Decimal, error) {
	v, err := parseDecimal(row, column)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if f := v.InexactFloat64(); math.IsInf(f, 0) || math.IsNaN(f) {
		return decimal.Decimal{}, fmt.Errorf("is out of range")
	}
	return v, nil
}

func parseQuantity(row Row, column string) (int64, error) {
	v, err := parseDecimal(row, column)
	if err != nil {
		return 0, err
	}
	if !v.IsInteger() {
		return 0, fmt.Errorf("must be a whole number")
	}
	if !v.BigInt().IsInt64() {
		return 0, fmt.Errorf("is out of range")
	}
	return v.IntPart(), nil
}

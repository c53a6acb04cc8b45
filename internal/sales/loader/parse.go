package loader

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/xuri/excelize/v2"

	"github.com/vishal-24-1/demodashboard/internal/sales"
	"github.com/vishal-24-1/demodashboard/pkg/config"
)

// Parse decodes data in the given format (json, csv or xlsx).
func Parse(format string, data []byte, sheet string) ([]sales.Row, error) {
	switch strings.ToLower(format) {
	case config.FormatJSON, "":
		return ParseJSON(bytes.NewReader(data))
	case config.FormatCSV:
		return ParseCSV(bytes.NewReader(data))
	case config.FormatXLSX:
		return ParseXLSX(bytes.NewReader(data), sheet)
	}
	return nil, fmt.Errorf("unsupported dataset format %q", format)
}

// ParseJSON reads an array of flat objects. Numbers are kept verbatim so
// numeric identifiers such as "Product ID": 1001 survive as text.
func ParseJSON(r io.Reader) ([]sales.Row, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var objects []map[string]any
	if err := dec.Decode(&objects); err != nil {
		return nil, fmt.Errorf("decoding json records: %w", err)
	}
	rows := make([]sales.Row, 0, len(objects))
	for _, obj := range objects {
		rows = append(rows, rowFromMap(obj))
	}
	return rows, nil
}

// ParseCSV reads a header line followed by one record per line.
func ParseCSV(r io.Reader) ([]sales.Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []sales.Row{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	rows := []sales.Row{}
	for {
		values, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv line %d: %w", len(rows)+2, err)
		}
		rows = append(rows, sales.RowFromHeaders(header, values))
	}
}

// ParseXLSX reads the named sheet, or the first one when sheet is empty. Cells
// are read raw so numeric dates arrive as serials and are converted here.
func ParseXLSX(r io.Reader, sheet string) ([]sales.Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	grid, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(grid) == 0 {
		return []sales.Row{}, nil
	}

	rows := make([]sales.Row, 0, len(grid)-1)
	for _, values := range grid[1:] {
		if isBlank(values) {
			continue
		}
		row := sales.RowFromHeaders(grid[0], values)
		if serial, err := strconv.ParseFloat(strings.TrimSpace(row[sales.ColumnDate]), 64); err == nil {
			if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
				row[sales.ColumnDate] = t.Format(sales.RecordDateLayout)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func isBlank(values []string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func rowFromMap(obj map[string]any) sales.Row {
	row := make(sales.Row, len(obj))
	for key, value := range obj {
		col, ok := sales.CanonicalColumn(key)
		if !ok {
			continue
		}
		row[col] = cellString(value)
	}
	return row
}

// cellString renders a driver or decoder value as the text the record decoder
// expects. Date-typed values are rendered as DD-MM-YYYY.
func cellString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case *big.Rat:
		if val == nil {
			return ""
		}
		return val.FloatString(9)
	case time.Time:
		return val.UTC().Format(sales.RecordDateLayout)
	case civil.Date:
		return fmt.Sprintf("%02d-%02d-%04d", val.Day, int(val.Month), val.Year)
	}
	return fmt.Sprint(v)
}

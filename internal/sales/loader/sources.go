package loader

import (
	"context"
	"fmt"
	"os"

	"github.com/vishal-24-1/demodashboard/internal/sales"
	"github.com/vishal-24-1/demodashboard/pkg/db/models"
)

// FileSource reads a local JSON, CSV or XLSX export.
type FileSource struct {
	Path   string
	Format string
	Sheet  string
}

func (s FileSource) Name() string { return "file" }

func (s FileSource) Rows(ctx context.Context) ([]sales.Row, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.Path, err)
	}
	return Parse(s.Format, data, s.Sheet)
}

type objectReader interface {
	ReadObject(ctx context.Context, bucket, object string) ([]byte, error)
	Ping(ctx context.Context) error
}

// GCSSource downloads an export from a bucket and parses it like a file.
type GCSSource struct {
	Client objectReader
	Bucket string
	Object string
	Format string
	Sheet  string
}

func (s GCSSource) Name() string { return "gcs" }

func (s GCSSource) Rows(ctx context.Context) ([]sales.Row, error) {
	data, err := s.Client.ReadObject(ctx, s.Bucket, s.Object)
	if err != nil {
		return nil, err
	}
	return Parse(s.Format, data, s.Sheet)
}

func (s GCSSource) Ping(ctx context.Context) error { return s.Client.Ping(ctx) }

type recordFinder interface {
	Find(ctx context.Context, table string, dest any) error
	Ping(ctx context.Context) error
}

// SQLSource reads the records table through GORM.
type SQLSource struct {
	Client recordFinder
	Table  string
}

func (s SQLSource) Name() string { return "sql" }

func (s SQLSource) Rows(ctx context.Context) ([]sales.Row, error) {
	var records []models.SalesRecord
	if err := s.Client.Find(ctx, s.Table, &records); err != nil {
		return nil, fmt.Errorf("reading table %s: %w", s.Table, err)
	}
	rows := make([]sales.Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, sales.Row{
			sales.ColumnProductID:       r.ProductID,
			sales.ColumnStyleID:         r.StyleID,
			sales.ColumnSize:            r.Size,
			sales.ColumnColor:           r.Color,
			sales.ColumnDate:            r.SaleDate,
			sales.ColumnFinalPrice:      r.FinalPrice,
			sales.ColumnCostPrice:       r.CostPrice,
			sales.ColumnQuantitySold:    r.QuantitySold,
			sales.ColumnInitialQuantity: r.InitialQuantity,
		})
	}
	return rows, nil
}

func (s SQLSource) Ping(ctx context.Context) error { return s.Client.Ping(ctx) }

type tableReader interface {
	ReadRecords(ctx context.Context) ([]map[string]any, error)
	Ping(ctx context.Context) error
}

// BigQuerySource reads the records table from BigQuery. Column names are
// matched loosely, so both "Product ID" and product_id work.
type BigQuerySource struct {
	Client tableReader
}

func (s BigQuerySource) Name() string { return "bigquery" }

func (s BigQuerySource) Rows(ctx context.Context) ([]sales.Row, error) {
	raw, err := s.Client.ReadRecords(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]sales.Row, 0, len(raw))
	for _, r := range raw {
		rows = append(rows, rowFromMap(r))
	}
	return rows, nil
}

func (s BigQuerySource) Ping(ctx context.Context) error { return s.Client.Ping(ctx) }

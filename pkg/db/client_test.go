package db

import (
	"context"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vishal-24-1/demodashboard/pkg/config"
	"github.com/vishal-24-1/demodashboard/pkg/db/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	stmt := `CREATE TABLE sales_records (
		product_id TEXT, style_id TEXT, size TEXT, color TEXT, sale_date TEXT,
		final_price TEXT, cost_price TEXT, quantity_sold TEXT, initial_quantity TEXT)`
	if err := conn.Exec(stmt).Error; err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	return conn
}

func TestFindReadsRows(t *testing.T) {
	conn := newTestDB(t)
	if err := conn.Exec(`INSERT INTO sales_records VALUES ('P1','S1','M','01-01-2024','499.5','300','4','10')`).Error; err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	client := NewFromGorm(conn)

	var rows []models.SalesRecord
	if err := client.Find(context.Background(), "sales_records", &rows); err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].FinalPrice != "499.5" || rows[0].QuantitySold != "4" || rows[0].SaleDate != "01-01-2024" {
		t.Fatalf("unexpected row %+v", rows[0])
	}
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("ping failed: %v", err)
	}
}

func TestFindUnknownTable(t *testing.T) {
	client := NewFromGorm(newTestDB(t))

	var rows []models.SalesRecord
	if err := client.Find(context.Background(), "missing_table", &rows); err == nil {
		t.Fatal("expected error for unknown table")
	}
}

func TestNewRequiresDSN(t *testing.T) {
	if _, err := New(context.Background(), config.DBConfig{}, nil); err == nil {
		t.Fatal("expected error without DSN")
	}
}

func TestNewOpensSQLite(t *testing.T) {
	client, err := New(context.Background(), config.DBConfig{Driver: config.DriverSQLite, DSN: "file::memory:"}, nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer client.Close()
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

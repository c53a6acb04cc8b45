package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vishal-24-1/demodashboard/pkg/config"
)

const sampleCSV = `Product ID,Style ID,Size,Color,Date,Final Price,Cost Price,Quantity Sold,Total Quantity Bought Initially
P1,S1,M,Red,01-01-2024,100,60,5,10
P2,S2,L,Blue,15-01-2024,50,40,2,20
P1,S1,L,Red,10-02-2024,100,60,3,10
`

func writeDataset(t *testing.T) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o600))
	return &config.Config{
		Dataset:   config.DatasetConfig{Source: config.SourceFile, Path: path, Format: config.FormatCSV},
		Dashboard: config.DashboardConfig{CurrencySymbol: "₹"},
	}
}

func TestRunConsolePrintsCards(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), writeDataset(t), nil, "2024-01-01", "2024-01-31", "console", &out)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Total Final Price")
	assert.Contains(t, text, "₹600.00")
	assert.Contains(t, text, "₹110.00")
	assert.Contains(t, text, "2024-01-01 .. 2024-01-31")
	assert.Contains(t, text, "50.00%")
}

func TestRunJSONEncodesSnapshot(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), writeDataset(t), nil, "2024-02-01", "2024-02-29", "json", &out)
	require.NoError(t, err)

	var snap struct {
		FilteredRecords int      `json:"filtered_records"`
		Sizes           []string `json:"sizes"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &snap))
	assert.Equal(t, 1, snap.FilteredRecords)
	assert.Equal(t, []string{"M", "L"}, snap.Sizes)
}

func TestRunRejectsBadInput(t *testing.T) {
	cfg := writeDataset(t)

	err := run(context.Background(), cfg, nil, "", "", "xml", &bytes.Buffer{})
	assert.Error(t, err)

	err = run(context.Background(), cfg, nil, "31-01-2024", "", "json", &bytes.Buffer{})
	assert.Error(t, err)
}

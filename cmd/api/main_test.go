package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vishal-24-1/demodashboard/pkg/config"
	pkgerrors "github.com/vishal-24-1/demodashboard/pkg/errors"
	"github.com/vishal-24-1/demodashboard/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "api", Output: &bytes.Buffer{}})
}

func TestRunReturnsLoadErrorInsteadOfExiting(t *testing.T) {
	cfg := &config.Config{
		Dataset: config.DatasetConfig{Source: config.SourceFile, Path: filepath.Join(t.TempDir(), "missing.csv"), Format: config.FormatCSV},
	}

	err := run(cfg, testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load dataset")
}

func TestRunSurfacesDatasetErrorWhenEveryRowIsRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.csv")
	content := "Product ID,Style ID,Size,Color,Date,Final Price,Cost Price,Quantity Sold,Total Quantity Bought Initially\n" +
		",S1,M,Red,01-01-2024,100,60,5,10\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	cfg := &config.Config{
		Dataset: config.DatasetConfig{Source: config.SourceFile, Path: path, Format: config.FormatCSV},
	}

	err := run(cfg, testLogger())

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeDataset, typed.Code())
}

package loader

import (
	"context"
	"fmt"
	"io"

	"github.com/vishal-24-1/demodashboard/pkg/bigquery"
	"github.com/vishal-24-1/demodashboard/pkg/config"
	"github.com/vishal-24-1/demodashboard/pkg/db"
	"github.com/vishal-24-1/demodashboard/pkg/logger"
	"github.com/vishal-24-1/demodashboard/pkg/storage/gcs"
)

// Pinger is implemented by sources backed by a remote dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// FromConfig builds the configured source. The returned closer releases any
// client the source opened.
func FromConfig(ctx context.Context, cfg *config.Config, logg *logger.Logger) (Source, io.Closer, error) {
	ds := cfg.Dataset
	switch ds.Source {
	case config.SourceFile:
		return FileSource{Path: ds.Path, Format: ds.ResolvedFormat(), Sheet: ds.Sheet}, nopCloser{}, nil

	case config.SourceGCS:
		client, err := gcs.NewClient(ctx, cfg.GCS, cfg.GCP, logg)
		if err != nil {
			return nil, nil, err
		}
		object := cfg.GCS.Object
		if object == "" {
			object = ds.Path
		}
		format := ds.ResolvedFormat()
		if ds.Format == "" {
			format = config.DatasetConfig{Path: object}.ResolvedFormat()
		}
		return GCSSource{Client: client, Bucket: client.DefaultBucket(), Object: object, Format: format, Sheet: ds.Sheet}, client, nil

	case config.SourceSQL:
		client, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			return nil, nil, err
		}
		return SQLSource{Client: client, Table: cfg.DB.Table}, client, nil

	case config.SourceBigQuery:
		client, err := bigquery.NewClient(ctx, cfg.GCP, cfg.BigQuery, logg)
		if err != nil {
			return nil, nil, err
		}
		return BigQuerySource{Client: client}, client, nil
	}
	return nil, nil, fmt.Errorf("unknown dataset source %q", ds.Source)
}

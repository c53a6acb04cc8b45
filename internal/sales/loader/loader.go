// Package loader reads the raw sales record set from a configured source and
// validates it into sales.Record values once at startup.
package loader

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/vishal-24-1/demodashboard/internal/sales"
	pkgerrors "github.com/vishal-24-1/demodashboard/pkg/errors"
	"github.com/vishal-24-1/demodashboard/pkg/logger"
	"github.com/vishal-24-1/demodashboard/pkg/metrics"
)

// Source yields raw rows keyed by canonical column name.
type Source interface {
	Name() string
	Rows(ctx context.Context) ([]sales.Row, error)
}

// LoadReport summarizes one ingestion pass. Errors holds every rejected row
// combined with multierr.
type LoadReport struct {
	Source   string
	Accepted int
	Rejected int
	Tagged   int
	Errors   error
}

// RowErrors splits the combined rejection error back into one error per row.
func (r LoadReport) RowErrors() []error {
	return multierr.Errors(r.Errors)
}

// Loader decodes rows from a Source into records.
type Loader struct {
	decoder *sales.Decoder
	metrics *metrics.DashboardMetrics
	logg    *logger.Logger
}

func New(decoder *sales.Decoder, m *metrics.DashboardMetrics, logg *logger.Logger) *Loader {
	if decoder == nil {
		decoder = sales.NewDecoder(false)
	}
	return &Loader{decoder: decoder, metrics: m, logg: logg}
}

// Load reads every row from src. A failing source aborts with a dependency
// error; individual bad rows are skipped and reported. A non-empty source
// whose rows are all rejected is a dataset error.
func (l *Loader) Load(ctx context.Context, src Source) ([]sales.Record, LoadReport, error) {
	report := LoadReport{Source: src.Name()}
	if l.logg != nil {
		ctx = l.logg.WithSource(ctx, src.Name())
	}

	rows, err := src.Rows(ctx)
	if err != nil {
		wrapped := pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("reading %s source", src.Name()))
		if l.logg != nil {
			l.logg.Error(l.logg.WithFields(ctx, pkgerrors.Dump(wrapped).LogFields()), "dataset.source_failed", err)
		}
		return nil, report, wrapped
	}

	records := make([]sales.Record, 0, len(rows))
	for i, row := range rows {
		rec, err := l.decoder.Decode(i+1, row)
		if err != nil {
			report.Rejected++
			report.Errors = multierr.Append(report.Errors, err)
			continue
		}
		if !rec.Date.Valid() {
			report.Tagged++
		}
		records = append(records, rec)
	}
	report.Accepted = len(records)

	l.metrics.AddLoaded(src.Name(), report.Accepted, report.Rejected)
	if l.logg != nil {
		logCtx := l.logg.WithFields(ctx, map[string]any{
			"accepted": report.Accepted,
			"rejected": report.Rejected,
			"tagged":   report.Tagged,
		})
		if report.Rejected > 0 {
			l.logg.Warn(l.logg.WithField(logCtx, "first_rejection", firstError(report.Errors)), "dataset.rows_rejected")
		}
		l.logg.Info(logCtx, "dataset.loaded")
	}
	if len(rows) > 0 && report.Accepted == 0 {
		return records, report, pkgerrors.New(pkgerrors.CodeDataset, fmt.Sprintf("no valid records in %s source", src.Name())).
			WithDetails(map[string]any{
				"rejected":        report.Rejected,
				"first_rejection": firstError(report.Errors),
			})
	}
	return records, report, nil
}

func firstError(err error) string {
	errs := multierr.Errors(err)
	if len(errs) == 0 {
		return ""
	}
	var fe *sales.FieldError
	if errors.As(errs[0], &fe) {
		return fe.Error()
	}
	return errs[0].Error()
}

package analytics

import (
	"context"

	"github.com/vishal-24-1/demodashboard/internal/analytics/views"
	"github.com/vishal-24-1/demodashboard/internal/sales"
	"github.com/vishal-24-1/demodashboard/pkg/logger"
)

// Service answers dashboard queries. The base records are never modified, so
// each call builds its own Session and no locking is needed.
type Service interface {
	Dashboard(ctx context.Context, from, to string) (Snapshot, error)
	Sizes() []string
	Records() int
}

type service struct {
	base  []sales.Record
	opts  Options
	sizes []string
	logg  *logger.Logger
}

// NewService builds a Service over base.
func NewService(base []sales.Record, opts Options, logg *logger.Logger) Service {
	return &service{
		base:  base,
		opts:  opts,
		sizes: views.DistinctSizes(base),
		logg:  logg,
	}
}

func (s *service) Dashboard(ctx context.Context, from, to string) (Snapshot, error) {
	rng, err := sales.NewDateRange(from, to)
	if err != nil {
		return Snapshot{}, err
	}
	session := &Session{base: s.base, sizes: s.sizes, opts: s.opts.withDefaults()}
	snap := session.Apply(rng)

	if s.logg != nil {
		logCtx := s.logg.WithRange(ctx, snap.From, snap.To)
		logCtx = s.logg.WithField(logCtx, "filtered_records", snap.FilteredRecords)
		s.logg.Debug(logCtx, "dashboard.recomputed")
	}
	return snap, nil
}

func (s *service) Sizes() []string {
	out := make([]string, len(s.sizes))
	copy(out, s.sizes)
	return out
}

func (s *service) Records() int {
	return len(s.base)
}

// Package analytics wires the dashboard engine together: a Session holds the
// selected date range and the outputs derived from it, and a Service answers
// dashboard requests over an immutable base record set.
package analytics

import (
	"time"

	"github.com/vishal-24-1/demodashboard/internal/analytics/insights"
	"github.com/vishal-24-1/demodashboard/internal/analytics/views"
	"github.com/vishal-24-1/demodashboard/internal/sales"
	"github.com/vishal-24-1/demodashboard/pkg/metrics"
)

const (
	triggerInit  = "init"
	triggerRange = "range"
)

var timeNowUTC = func() time.Time {
	return time.Now().UTC()
}

// Snapshot is every dashboard output for one selected range.
type Snapshot struct {
	From              string                      `json:"from"`
	To                string                      `json:"to"`
	FilteredRecords   int                         `json:"filtered_records"`
	KPIs              views.KPIs                  `json:"kpis"`
	Cards             []views.KPICard             `json:"cards"`
	SalesThroughRate  []views.SalesThroughRateRow `json:"sales_through_rate"`
	SalesCount        []views.SalesCountRow       `json:"sales_count"`
	ProfitByStyleSize []views.ProfitRow           `json:"profit_by_style_size"`
	SalesTrend        []views.TrendPoint          `json:"sales_trend"`
	Insights          []string                    `json:"insights"`
	Sizes             []string                    `json:"sizes"`

	rng   sales.DateRange
	steps []insights.Insight
}

// Range returns the window the snapshot was computed for.
func (s Snapshot) Range() sales.DateRange { return s.rng }

// InsightSteps returns the insights tagged with the step that produced them.
func (s Snapshot) InsightSteps() []insights.Insight {
	out := make([]insights.Insight, len(s.steps))
	copy(out, s.steps)
	return out
}

// Options tunes a Session. Zero values fall back to the defaults.
type Options struct {
	Clock    func() time.Time
	Pipeline *insights.Pipeline
	Metrics  *metrics.DashboardMetrics
	Currency string
}

func (o Options) withDefaults() Options {
	if o.Clock == nil {
		o.Clock = timeNowUTC
	}
	if o.Pipeline == nil {
		o.Pipeline = insights.Default()
	}
	return o
}

// Session owns a selected range and the snapshot derived from it. It is not
// safe for concurrent use.
type Session struct {
	base     []sales.Record
	sizes    []string
	opts     Options
	snapshot Snapshot
}

// NewSession computes the initial snapshot with both bounds unset.
func NewSession(base []sales.Record, opts Options) *Session {
	s := &Session{
		base:  base,
		sizes: views.DistinctSizes(base),
		opts:  opts.withDefaults(),
	}
	s.snapshot = s.compute(sales.DateRange{}, triggerInit)
	return s
}

// SetRange parses both bounds and, only if both are valid, replaces the
// snapshot with one recomputed from the base set. On error the previous
// snapshot is left untouched.
func (s *Session) SetRange(from, to string) error {
	rng, err := sales.NewDateRange(from, to)
	if err != nil {
		return err
	}
	s.Apply(rng)
	return nil
}

// Apply recomputes every output for rng and returns the new snapshot.
func (s *Session) Apply(rng sales.DateRange) Snapshot {
	s.snapshot = s.compute(rng, triggerRange)
	return s.snapshot
}

// Snapshot returns the outputs for the current range.
func (s *Session) Snapshot() Snapshot {
	return s.snapshot
}

func (s *Session) compute(rng sales.DateRange, trigger string) Snapshot {
	start := time.Now()
	filtered := sales.FilterByRange(s.base, rng, s.opts.Clock())

	kpis := views.ComputeKPIs(filtered)
	generated := s.opts.Pipeline.Generate(filtered)

	snap := Snapshot{
		From:              rng.From(),
		To:                rng.To(),
		FilteredRecords:   len(filtered),
		KPIs:              kpis,
		Cards:             kpis.Display(s.opts.Currency),
		SalesThroughRate:  views.SalesThroughRate(filtered),
		SalesCount:        views.SalesCount(filtered),
		ProfitByStyleSize: views.ProfitByStyleSize(filtered),
		SalesTrend:        views.SalesTrend(filtered),
		Insights:          insights.Sentences(generated),
		Sizes:             append([]string(nil), s.sizes...),
		rng:               rng,
		steps:             generated,
	}

	for _, in := range generated {
		s.opts.Metrics.IncInsight(in.Step)
	}
	s.opts.Metrics.SetFilteredRecords(len(filtered))
	s.opts.Metrics.ObserveRecompute(trigger, time.Since(start))
	return snap
}

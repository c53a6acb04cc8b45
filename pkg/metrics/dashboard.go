package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DashboardMetrics records how the dashboard engine is exercised.
type DashboardMetrics struct {
	recompute       *prometheus.HistogramVec
	filteredRecords prometheus.Gauge
	insights        *prometheus.CounterVec
	loadAccepted    *prometheus.CounterVec
	loadRejected    *prometheus.CounterVec
}

// NewDashboardMetrics registers the dashboard metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewDashboardMetrics(reg prometheus.Registerer) *DashboardMetrics {
	if reg == nil {
		return &DashboardMetrics{}
	}
	recompute := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dashboard_recompute_duration_seconds",
		Help:    "Duration of a full dashboard recomputation in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"trigger"})
	filtered := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "dashboard_filtered_records",
		Help: "Records inside the most recently selected date range.",
	})
	insights := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_insights_emitted_total",
		Help: "Insight sentences emitted, by pipeline step.",
	}, []string{"step"})
	accepted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dataset_records_accepted_total",
		Help: "Records accepted at ingestion, by source.",
	}, []string{"source"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dataset_records_rejected_total",
		Help: "Records rejected at ingestion, by source.",
	}, []string{"source"})
	reg.MustRegister(recompute, filtered, insights, accepted, rejected)
	return &DashboardMetrics{
		recompute:       recompute,
		filteredRecords: filtered,
		insights:        insights,
		loadAccepted:    accepted,
		loadRejected:    rejected,
	}
}

// ObserveRecompute records the duration of one recomputation.
func (m *DashboardMetrics) ObserveRecompute(trigger string, duration time.Duration) {
	if m == nil || m.recompute == nil {
		return
	}
	m.recompute.WithLabelValues(normalizeLabel(trigger)).Observe(duration.Seconds())
}

// SetFilteredRecords stores the size of the latest filtered set.
func (m *DashboardMetrics) SetFilteredRecords(n int) {
	if m == nil || m.filteredRecords == nil {
		return
	}
	m.filteredRecords.Set(float64(n))
}

// IncInsight counts an emitted insight for the named step.
func (m *DashboardMetrics) IncInsight(step string) {
	if m == nil || m.insights == nil {
		return
	}
	m.insights.WithLabelValues(normalizeLabel(step)).Inc()
}

// AddLoaded records the outcome of a dataset load.
func (m *DashboardMetrics) AddLoaded(source string, accepted, rejected int) {
	if m == nil || m.loadAccepted == nil {
		return
	}
	m.loadAccepted.WithLabelValues(normalizeLabel(source)).Add(float64(accepted))
	m.loadRejected.WithLabelValues(normalizeLabel(source)).Add(float64(rejected))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}

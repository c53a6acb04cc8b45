// Package dashboard serves the sales dashboard over HTTP.
package dashboard

import (
	"net/http"

	"github.com/vishal-24-1/demodashboard/api/responses"
	"github.com/vishal-24-1/demodashboard/internal/analytics"
	"github.com/vishal-24-1/demodashboard/internal/analytics/insights"
	"github.com/vishal-24-1/demodashboard/internal/analytics/views"
	"github.com/vishal-24-1/demodashboard/pkg/logger"
)

type insightsResponse struct {
	From     string             `json:"from"`
	To       string             `json:"to"`
	Insights []string           `json:"insights"`
	Steps    []insights.Insight `json:"steps"`
}

type kpisResponse struct {
	From  string          `json:"from"`
	To    string          `json:"to"`
	KPIs  views.KPIs      `json:"kpis"`
	Cards []views.KPICard `json:"cards"`
}

type sizesResponse struct {
	Sizes []string `json:"sizes"`
}

// Dashboard returns the full snapshot for the requested range.
func Dashboard(service analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, ok := snapshot(w, r, service, logg)
		if !ok {
			return
		}
		responses.WriteSuccess(w, snap)
	}
}

func Insights(service analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, ok := snapshot(w, r, service, logg)
		if !ok {
			return
		}
		responses.WriteSuccess(w, insightsResponse{
			From:     snap.From,
			To:       snap.To,
			Insights: snap.Insights,
			Steps:    snap.InsightSteps(),
		})
	}
}

func KPIs(service analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, ok := snapshot(w, r, service, logg)
		if !ok {
			return
		}
		responses.WriteSuccess(w, kpisResponse{
			From:  snap.From,
			To:    snap.To,
			KPIs:  snap.KPIs,
			Cards: snap.Cards,
		})
	}
}

// Sizes lists every size in the loaded data, independent of any range.
func Sizes(service analytics.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, sizesResponse{Sizes: service.Sizes()})
	}
}

func snapshot(w http.ResponseWriter, r *http.Request, service analytics.Service, logg *logger.Logger) (analytics.Snapshot, bool) {
	ctx := r.Context()
	from, to, err := resolveDashboardRange(r, timeNowUTC())
	if err != nil {
		responses.WriteError(ctx, logg, w, err)
		return analytics.Snapshot{}, false
	}

	snap, err := service.Dashboard(ctx, from, to)
	if err != nil {
		responses.WriteError(ctx, logg, w, err)
		return analytics.Snapshot{}, false
	}
	return snap, true
}

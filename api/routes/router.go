package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vishal-24-1/demodashboard/api/controllers"
	"github.com/vishal-24-1/demodashboard/api/controllers/dashboard"
	"github.com/vishal-24-1/demodashboard/api/middleware"
	"github.com/vishal-24-1/demodashboard/api/responses"
	"github.com/vishal-24-1/demodashboard/internal/analytics"
	"github.com/vishal-24-1/demodashboard/pkg/config"
	pkgerrors "github.com/vishal-24-1/demodashboard/pkg/errors"
	"github.com/vishal-24-1/demodashboard/pkg/logger"
)

// NewRouter mounts health, metrics and the dashboard API. limiter may be nil,
// in which case requests are not throttled.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	service analytics.Service,
	limiter middleware.RateLimitStore,
	gatherer prometheus.Gatherer,
	checks ...controllers.ReadinessCheck,
) http.Handler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins...),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		responses.WriteError(r.Context(), nil, w, pkgerrors.New(pkgerrors.CodeNotFound, "route not found"))
	})

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, service.Records, checks...))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	policy := middleware.NewRateLimitPolicy("dashboard", cfg.RateLimit.Window, cfg.RateLimit.Limit)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(policy, limiter, logg))

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/", dashboard.Dashboard(service, logg))
			r.Get("/insights", dashboard.Insights(service, logg))
			r.Get("/kpis", dashboard.KPIs(service, logg))
		})
		r.Get("/sizes", dashboard.Sizes(service))
	})

	return r
}

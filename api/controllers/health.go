package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/vishal-24-1/demodashboard/api/responses"
	"github.com/vishal-24-1/demodashboard/pkg/config"
	pkgerrors "github.com/vishal-24-1/demodashboard/pkg/errors"
)

const envHeader = "X-DemoDash-Env"

const readinessTimeout = 3 * time.Second

// Pinger is a dependency that can report whether it is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ReadinessCheck names one dependency checked by HealthReady.
type ReadinessCheck struct {
	Name   string
	Pinger Pinger
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings each check in order and reports the first failure as a
// dependency error.
func HealthReady(cfg *config.Config, records func() int, checks ...ReadinessCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		for _, check := range checks {
			if check.Pinger == nil {
				continue
			}
			if err := check.Pinger.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), nil, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, check.Name+" unavailable").
						WithDetails(map[string]any{"check": check.Name}))
				return
			}
		}

		body := map[string]any{"status": "ready"}
		if records != nil {
			body["records"] = records()
		}
		responses.WriteSuccess(w, body)
	}
}

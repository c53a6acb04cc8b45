package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/vishal-24-1/demodashboard/api/controllers"
	"github.com/vishal-24-1/demodashboard/api/middleware"
	"github.com/vishal-24-1/demodashboard/api/routes"
	"github.com/vishal-24-1/demodashboard/internal/analytics"
	"github.com/vishal-24-1/demodashboard/internal/sales"
	"github.com/vishal-24-1/demodashboard/internal/sales/loader"
	"github.com/vishal-24-1/demodashboard/pkg/config"
	"github.com/vishal-24-1/demodashboard/pkg/logger"
	"github.com/vishal-24-1/demodashboard/pkg/metrics"
	"github.com/vishal-24-1/demodashboard/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped", err)
		os.Exit(1)
	}
}

// run owns every resource so deferred cleanup completes before main exits.
func run(cfg *config.Config, logg *logger.Logger) error {
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	dashboardMetrics := metrics.NewDashboardMetrics(reg)

	source, closer, err := loader.FromConfig(runCtx, cfg, logg)
	if err != nil {
		return fmt.Errorf("bootstrap dataset source: %w", err)
	}
	defer func() {
		if err := closer.Close(); err != nil {
			logg.Error(context.Background(), "error closing dataset source", err)
		}
	}()

	records, _, err := loader.New(sales.NewDecoder(cfg.Dataset.StrictDates), dashboardMetrics, logg).Load(runCtx, source)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	checks := []controllers.ReadinessCheck{}
	if pinger, ok := source.(loader.Pinger); ok {
		checks = append(checks, controllers.ReadinessCheck{Name: "dataset", Pinger: pinger})
	}

	var limiter middleware.RateLimitStore
	if cfg.Redis.Enabled() {
		redisClient, err := redis.New(runCtx, cfg.Redis, logg)
		if err != nil {
			return fmt.Errorf("bootstrap redis: %w", err)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		limiter = redisClient
		checks = append(checks, controllers.ReadinessCheck{Name: "redis", Pinger: redisClient})
	} else {
		logg.Warn(runCtx, "redis not configured, rate limiting disabled")
	}

	service := analytics.NewService(records, analytics.Options{
		Metrics:  dashboardMetrics,
		Currency: cfg.Dashboard.CurrencySymbol,
	}, logg)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(runCtx, map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"source":  source.Name(),
		"records": len(records),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(cfg, logg, service, limiter, reg, checks...),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
		defer cancel()
		logg.Info(ctx, "shutting down api server")
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

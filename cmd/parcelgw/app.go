package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/vyrodovalexey/parcelgw/internal/carrier"
	"github.com/vyrodovalexey/parcelgw/internal/circuitbreaker"
	"github.com/vyrodovalexey/parcelgw/internal/config"
	"github.com/vyrodovalexey/parcelgw/internal/health"
	"github.com/vyrodovalexey/parcelgw/internal/observability"
	"github.com/vyrodovalexey/parcelgw/internal/quote"
	"github.com/vyrodovalexey/parcelgw/internal/server"
)

const upstreamBreakerName = "parcelmonkey"

// readinessProbeTimeout bounds a /ready request on the metrics listener.
const readinessProbeTimeout = time.Second

var errNotServing = errors.New("HTTP server is not serving")

// application holds all application components.
type application struct {
	config        *config.Config
	server        *server.Server
	health        *health.Handler
	metrics       *observability.Metrics
	tracer        *observability.Tracer
	breaker       *circuitbreaker.Breaker
	metricsServer *http.Server
}

// initApplication wires the carrier client, quote service and HTTP server.
func initApplication(cfg *config.Config, logger observability.Logger) (*application, error) {
	tracer, err := initTracer(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracer: %w", err)
	}

	loc, err := cfg.Quote.Location()
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone: %w", err)
	}

	metrics := observability.NewMetrics(config.DefaultServiceName)
	metrics.SetBuildInfo(version, gitCommit, buildTime)

	tp := tracer.TracerProvider()

	breaker := circuitbreaker.New(upstreamBreakerName, cfg.CircuitBreaker,
		circuitbreaker.WithLogger(logger),
		circuitbreaker.WithMetrics(metrics),
		circuitbreaker.WithTracerProvider(tp),
	)

	client := carrier.NewClient(cfg.Upstream,
		carrier.WithBreaker(breaker),
		carrier.WithLogger(logger),
		carrier.WithMetrics(metrics),
		carrier.WithTracerProvider(tp),
	)

	quotes := quote.NewService(client,
		quote.WithLocation(loc),
		quote.WithBaselineCost(cfg.Quote.BaselineCost),
		quote.WithLogger(logger),
		quote.WithMetrics(metrics),
	)

	healthHandler := health.NewHandler(cfg.Upstream, logger, health.WithReadinessTimeout(readinessProbeTimeout))
	healthHandler.AddCheck(health.NewCheckFunc("upstream_circuit", breakerCheck(breaker)))

	srv := server.New(cfg, server.Dependencies{
		Quotes:         quotes,
		Health:         healthHandler,
		Logger:         logger,
		Metrics:        metrics,
		TracerProvider: tp,
	})
	healthHandler.AddCheck(health.NewCheckFunc("http_server", servingCheck(srv)))

	return &application{
		config:  cfg,
		server:  srv,
		health:  healthHandler,
		metrics: metrics,
		tracer:  tracer,
		breaker: breaker,
	}, nil
}

// breakerCheck fails readiness while the upstream breaker is open.
func breakerCheck(b *circuitbreaker.Breaker) func(context.Context) error {
	return func(context.Context) error {
		if b.State() == "open" {
			return circuitbreaker.ErrOpen
		}
		return nil
	}
}

// servingCheck fails readiness until the API listener is bound.
func servingCheck(srv *server.Server) func(context.Context) error {
	return func(context.Context) error {
		if !srv.IsRunning() {
			return errNotServing
		}
		return nil
	}
}

// logStartupBanner reports where the service can be reached.
func logStartupBanner(cfg *config.Config, logger observability.Logger) {
	logger.Info("parcelgw proxy listening",
		observability.Int("port", cfg.Server.Port),
		observability.String("health_url", fmt.Sprintf("http://localhost:%d%s", cfg.Server.Port, server.HealthPath)),
		observability.String("upstream", cfg.Upstream.BaseURL),
	)
}

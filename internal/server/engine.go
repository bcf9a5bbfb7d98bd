package server

import (
	"go.opentelemetry.io/otel/trace"

	"github.com/vyrodovalexey/parcelgw/internal/config"
	"github.com/vyrodovalexey/parcelgw/internal/health"
	"github.com/vyrodovalexey/parcelgw/internal/middleware"
	"github.com/vyrodovalexey/parcelgw/internal/observability"
)

// Dependencies are the collaborators of the API server.
type Dependencies struct {
	Quotes         QuoteService
	Health         *health.Handler
	Logger         observability.Logger
	Metrics        *observability.Metrics
	TracerProvider trace.TracerProvider
}

// New builds the API server with its middleware chain and routes.
func New(cfg *config.Config, deps Dependencies) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = observability.NopLogger()
	}

	s := NewServer(cfg.Server, logger)

	s.Use(
		middleware.Recovery(logger),
		middleware.RequestID(),
	)
	if cfg.Observability.Tracing.Enabled {
		s.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			TracerProvider: deps.TracerProvider,
		}))
	}
	s.Use(
		middleware.Logging(logger),
		middleware.Metrics(deps.Metrics),
		middleware.CORS(cfg.CORS),
		middleware.BodyLimit(cfg.Server.MaxRequestBodySize),
		middleware.ErrorHandler(logger),
	)

	RegisterRoutes(s.engine, deps.Quotes, deps.Health)

	return s
}

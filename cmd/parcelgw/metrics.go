package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/vyrodovalexey/parcelgw/internal/config"
	"github.com/vyrodovalexey/parcelgw/internal/health"
	"github.com/vyrodovalexey/parcelgw/internal/observability"
)

// createMetricsServer creates the metrics and probe listener.
func createMetricsServer(
	cfg config.MetricsConfig,
	metrics *observability.Metrics,
	healthHandler *health.Handler,
) *http.Server {
	path := cfg.Path
	if path == "" {
		path = config.DefaultMetricsPath
	}
	port := cfg.Port
	if port == 0 {
		port = config.DefaultMetricsPort
	}

	mux := http.NewServeMux()
	mux.Handle(path, metrics.Handler())
	mux.Handle("/live", healthHandler.LivenessHTTPHandler())
	mux.Handle("/ready", healthHandler.ReadinessHTTPHandler())

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
	}
}

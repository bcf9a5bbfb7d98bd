package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/vyrodovalexey/parcelgw/internal/config"
	"github.com/vyrodovalexey/parcelgw/internal/observability"
)

const defaultConfigPath = "configs/parcelgw.yaml"

// loadConfig reads the file at path, applies PORT, PM_USER_ID and
// PM_API_KEY from lookup and validates the result. A missing file falls
// back to built-in defaults.
func loadConfig(path string, lookup config.LookupFunc, logger observability.Logger) (*config.Config, error) {
	loader := config.NewLoaderWithLookup(lookup)

	cfg, err := loader.Load(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Warn("configuration file not found, using defaults", observability.String("path", path))
		cfg = config.DefaultConfig()
	case err != nil:
		return nil, err
	}

	if err := loader.ApplyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	validator := config.NewValidator()
	if err := validator.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	for _, w := range validator.Warnings() {
		logger.Warn("configuration warning", observability.String("message", w))
	}

	logger.Info("configuration loaded",
		observability.Int("port", cfg.Server.Port),
		observability.String("upstream", cfg.Upstream.BaseURL),
		observability.String("api_version", cfg.Upstream.APIVersion),
		observability.Bool("circuit_breaker", cfg.CircuitBreaker.Enabled),
		observability.Bool("metrics", cfg.Observability.Metrics.Enabled),
		observability.Bool("tracing", cfg.Observability.Tracing.Enabled),
	)

	return cfg, nil
}

func initTracer(cfg *config.Config) (*observability.Tracer, error) {
	tracing := cfg.Observability.Tracing

	serviceName := tracing.ServiceName
	if serviceName == "" {
		serviceName = config.DefaultServiceName
	}

	return observability.NewTracer(observability.TracerConfig{
		ServiceName:    serviceName,
		ServiceVersion: version,
		OTLPEndpoint:   tracing.OTLPEndpoint,
		SamplingRate:   tracing.SamplingRate,
		Enabled:        tracing.Enabled,
	})
}

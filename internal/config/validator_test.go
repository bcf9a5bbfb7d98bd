package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "server.port: bad", (&ValidationError{Path: "server.port", Message: "bad"}).Error())
	assert.Equal(t, "bad", (&ValidationError{Message: "bad"}).Error())
}

func TestValidationErrors_Error(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "no validation errors", ValidationErrors{}.Error())
	assert.Equal(t, "a: one", ValidationErrors{{Path: "a", Message: "one"}}.Error())

	multi := ValidationErrors{{Path: "a", Message: "one"}, {Path: "b", Message: "two"}}.Error()
	assert.Contains(t, multi, "2 validation errors")
	assert.Contains(t, multi, "1. a: one")
	assert.Contains(t, multi, "2. b: two")
}

func TestValidateConfig_Defaults(t *testing.T) {
	t.Parallel()

	v := NewValidator()
	require.NoError(t, v.Validate(DefaultConfig()))
	assert.Contains(t, v.Warnings(), "upstream credentials are placeholders; set PM_USER_ID and PM_API_KEY")
}

func TestValidateConfig_Nil(t *testing.T) {
	t.Parallel()

	err := ValidateConfig(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration is nil")
}

func TestValidator_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		mutate   func(cfg *Config)
		wantPath string
	}{
		{name: "port zero", mutate: func(c *Config) { c.Server.Port = 0 }, wantPath: "server.port"},
		{name: "port too high", mutate: func(c *Config) { c.Server.Port = 70000 }, wantPath: "server.port"},
		{name: "negative timeout", mutate: func(c *Config) { c.Server.ReadTimeout = Duration(-time.Second) }, wantPath: "server"},
		{name: "missing base url", mutate: func(c *Config) { c.Upstream.BaseURL = "" }, wantPath: "upstream.baseUrl"},
		{name: "relative base url", mutate: func(c *Config) { c.Upstream.BaseURL = "/api" }, wantPath: "upstream.baseUrl"},
		{name: "ftp base url", mutate: func(c *Config) { c.Upstream.BaseURL = "ftp://example.test" }, wantPath: "upstream.baseUrl"},
		{name: "missing api version", mutate: func(c *Config) { c.Upstream.APIVersion = "" }, wantPath: "upstream.apiVersion"},
		{name: "zero upstream timeout", mutate: func(c *Config) { c.Upstream.Timeout = 0 }, wantPath: "upstream.timeout"},
		{name: "zero baseline", mutate: func(c *Config) { c.Quote.BaselineCost = 0 }, wantPath: "quote.baselineCost"},
		{name: "unknown timezone", mutate: func(c *Config) { c.Quote.Timezone = "Mars/Olympus" }, wantPath: "quote.timezone"},
		{
			name: "breaker threshold",
			mutate: func(c *Config) {
				c.CircuitBreaker.Enabled = true
				c.CircuitBreaker.Threshold = 0
			},
			wantPath: "circuitBreaker.threshold",
		},
		{
			name: "breaker timeout",
			mutate: func(c *Config) {
				c.CircuitBreaker.Enabled = true
				c.CircuitBreaker.Timeout = 0
			},
			wantPath: "circuitBreaker.timeout",
		},
		{
			name: "metrics port clash",
			mutate: func(c *Config) {
				c.Observability.Metrics.Enabled = true
				c.Observability.Metrics.Port = c.Server.Port
			},
			wantPath: "observability.metrics.port",
		},
		{
			name: "metrics path",
			mutate: func(c *Config) {
				c.Observability.Metrics.Enabled = true
				c.Observability.Metrics.Path = "metrics"
			},
			wantPath: "observability.metrics.path",
		},
		{
			name:     "sampling rate",
			mutate:   func(c *Config) { c.Observability.Tracing.SamplingRate = 1.5 },
			wantPath: "observability.tracing.samplingRate",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := ValidateConfig(cfg)
			require.Error(t, err)

			var verrs ValidationErrors
			require.True(t, errors.As(err, &verrs))
			paths := make([]string, 0, len(verrs))
			for _, e := range verrs {
				paths = append(paths, e.Path)
			}
			assert.Contains(t, paths, tt.wantPath)
		})
	}
}

func TestValidator_DisabledBreakerIgnoresThreshold(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.CircuitBreaker.Threshold = 0
	assert.NoError(t, ValidateConfig(cfg))
}

func TestValidator_Warnings(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Upstream.UserID = ""
	cfg.Upstream.Token = "real-token"
	cfg.Observability.Tracing.Enabled = true

	v := NewValidator()
	require.NoError(t, v.Validate(cfg))

	warnings := v.Warnings()
	assert.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "upstream.userId is not set")
	assert.Contains(t, warnings[1], "otlpEndpoint")
}

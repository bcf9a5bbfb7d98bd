package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vyrodovalexey/parcelgw/internal/config"
	"github.com/vyrodovalexey/parcelgw/internal/observability"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var fixedNow = time.Date(2026, time.October, 18, 9, 30, 15, 250_000_000, time.UTC)

func fixedClock() time.Time { return fixedNow }

func TestStatusHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		upstream  config.UpstreamConfig
		wantUser  string
		wantToken string
	}{
		{
			name:      "credentials configured",
			upstream:  config.DefaultConfig().Upstream,
			wantUser:  CredentialConfigured,
			wantToken: CredentialConfigured,
		},
		{
			name:      "credentials missing",
			upstream:  config.UpstreamConfig{BaseURL: "https://pm.test", APIVersion: "3.1"},
			wantUser:  CredentialMissing,
			wantToken: CredentialMissing,
		},
		{
			name:      "token only",
			upstream:  config.UpstreamConfig{BaseURL: "https://pm.test", APIVersion: "3.1", Token: "secret-token"},
			wantUser:  CredentialMissing,
			wantToken: CredentialConfigured,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := NewHandler(tt.upstream, nil, WithClock(fixedClock))
			router := gin.New()
			router.GET("/api/health", h.StatusHandler())

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

			require.Equal(t, http.StatusOK, w.Code)

			var resp StatusResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "ok", resp.Status)
			assert.Equal(t, "ParcelMonkey Proxy", resp.Service)
			assert.Equal(t, "2026-10-18T09:30:15.250Z", resp.Timestamp)
			assert.Equal(t, tt.upstream.BaseURL, resp.Config.BaseURL)
			assert.Equal(t, tt.upstream.APIVersion, resp.Config.Version)
			assert.Equal(t, tt.wantUser, resp.Config.UserID)
			assert.Equal(t, tt.wantToken, resp.Config.Token)
			assert.NotContains(t, w.Body.String(), "secret-token")
		})
	}
}

func TestLivenessHTTPHandler(t *testing.T) {
	t.Parallel()

	h := NewHandler(config.UpstreamConfig{}, nil)

	w := httptest.NewRecorder()
	h.LivenessHTTPHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/live", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestReadinessHTTPHandler(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.WarnLevel)
	logger := observability.NewLoggerFromZap(zap.New(core))

	tests := []struct {
		name       string
		checks     []Check
		wantStatus int
		wantBody   string
	}{
		{name: "no checks", wantStatus: http.StatusOK, wantBody: "ok"},
		{
			name: "passing check",
			checks: []Check{
				NewCheckFunc("upstream_circuit", func(context.Context) error { return nil }),
			},
			wantStatus: http.StatusOK,
			wantBody:   "ok",
		},
		{
			name: "failing check",
			checks: []Check{
				NewCheckFunc("upstream_circuit", func(context.Context) error { return errors.New("circuit breaker is open") }),
				NewCheckFunc("other", func(context.Context) error { return nil }),
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   "error",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(config.UpstreamConfig{}, logger, WithReadinessTimeout(time.Second))
			for _, c := range tt.checks {
				h.AddCheck(c)
			}

			w := httptest.NewRecorder()
			h.ReadinessHTTPHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

			assert.Equal(t, tt.wantStatus, w.Code)

			var resp ReadinessResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantBody, resp.Status)
			assert.Len(t, resp.Checks, len(tt.checks))
		})
	}

	assert.Equal(t, 1, logs.FilterMessage("readiness check failed").Len())
}

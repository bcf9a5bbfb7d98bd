package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vyrodovalexey/parcelgw/internal/circuitbreaker"
	"github.com/vyrodovalexey/parcelgw/internal/config"
	"github.com/vyrodovalexey/parcelgw/internal/observability"
)

func observedLogger() (observability.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return observability.NewLoggerFromZap(zap.New(core)), logs
}

func lookupFrom(env map[string]string) config.LookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "parcelgw.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseFlags(t *testing.T) {
	t.Parallel()

	flags := parseFlags([]string{"-config", "/etc/parcelgw.yaml", "-log-level", "debug", "-log-format", "console", "-version"})

	assert.Equal(t, cliFlags{
		configPath:  "/etc/parcelgw.yaml",
		logLevel:    "debug",
		logFormat:   "console",
		showVersion: true,
	}, flags)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	logger, logs := observedLogger()

	cfg, err := loadConfig(filepath.Join(t.TempDir(), "absent.yaml"), lookupFrom(nil), logger)
	require.NoError(t, err)

	assert.Equal(t, config.DefaultPort, cfg.Server.Port)
	assert.Equal(t, 1, logs.FilterMessage("configuration file not found, using defaults").Len())
	assert.Equal(t, 1, logs.FilterMessage("configuration warning").
		FilterField(observability.String("message", "upstream credentials are placeholders; set PM_USER_ID and PM_API_KEY")).Len())
}

func TestLoadConfig_EnvironmentWins(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
server:
  port: 4000
upstream:
  baseUrl: https://pm.example
  apiVersion: "3.1"
  userId: ${PM_USER_ID:-file-user}
  token: file-token
`)

	logger, logs := observedLogger()

	cfg, err := loadConfig(path, lookupFrom(map[string]string{
		"PORT":       "5050",
		"PM_USER_ID": "env-user",
		"PM_API_KEY": "env-token",
	}), logger)
	require.NoError(t, err)

	assert.Equal(t, 5050, cfg.Server.Port)
	assert.Equal(t, "https://pm.example", cfg.Upstream.BaseURL)
	assert.Equal(t, "env-user", cfg.Upstream.UserID)
	assert.Equal(t, "env-token", cfg.Upstream.Token)
	assert.Zero(t, logs.FilterMessage("configuration warning").Len())
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		env     map[string]string
		wantErr string
	}{
		{name: "invalid yaml", content: "server: [", wantErr: "failed to parse YAML"},
		{name: "invalid port env", content: "", env: map[string]string{"PORT": "http"}, wantErr: "invalid PORT"},
		{name: "validation failure", content: "upstream:\n  baseUrl: ftp://pm.example\n", wantErr: "invalid configuration"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := loadConfig(writeConfig(t, tt.content), lookupFrom(tt.env), observability.NopLogger())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Server.Address = "127.0.0.1"
	cfg.Server.Port = 0
	cfg.Server.ShutdownTimeout = config.Duration(2 * time.Second)
	return cfg
}

func TestInitApplication(t *testing.T) {
	t.Parallel()

	app, err := initApplication(testConfig(), observability.NopLogger())
	require.NoError(t, err)

	assert.NotNil(t, app.server)
	assert.NotNil(t, app.health)
	assert.NotNil(t, app.metrics)
	assert.NotNil(t, app.tracer)
	assert.Nil(t, app.breaker, "breaker is disabled by default")
}

func TestInitApplication_BadTimezone(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Quote.Timezone = "Mars/Olympus_Mons"

	_, err := initApplication(cfg, observability.NopLogger())
	assert.ErrorContains(t, err, "failed to load timezone")
}

func TestRun_GracefulShutdown(t *testing.T) {
	t.Parallel()

	logger, logs := observedLogger()
	app, err := initApplication(testConfig(), logger)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- run(ctx, app, logger) }()

	require.Eventually(t, func() bool { return app.server.Addr() != nil }, 2*time.Second, 10*time.Millisecond)

	resp, err := http.Get("http://" + app.server.Addr().String() + "/api/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancellation")
	}

	assert.False(t, app.server.IsRunning())
	assert.Equal(t, 1, logs.FilterMessage("parcelgw proxy listening").Len())
	assert.Equal(t, 1, logs.FilterMessage("parcelgw stopped").Len())
}

func TestCreateMetricsServer(t *testing.T) {
	t.Parallel()

	app, err := initApplication(testConfig(), observability.NopLogger())
	require.NoError(t, err)

	srv := createMetricsServer(config.MetricsConfig{Enabled: true}, app.metrics, app.health)
	assert.Equal(t, ":9090", srv.Addr)

	tests := []struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		{path: "/metrics", wantStatus: http.StatusOK, wantBody: "parcelgw_build_info"},
		{path: "/live", wantStatus: http.StatusOK, wantBody: `"status":"ok"`},
		{path: "/ready", wantStatus: http.StatusServiceUnavailable, wantBody: errNotServing.Error()},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(strings.TrimPrefix(tt.path, "/"), func(t *testing.T) {
			w := httptest.NewRecorder()
			srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestReadiness_FollowsServerLifecycle(t *testing.T) {
	t.Parallel()

	app, err := initApplication(testConfig(), observability.NopLogger())
	require.NoError(t, err)

	ready := app.health.ReadinessHTTPHandler()
	probe := func() int {
		w := httptest.NewRecorder()
		ready.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
		return w.Code
	}

	assert.Equal(t, http.StatusServiceUnavailable, probe())

	require.NoError(t, app.server.Listen(context.Background()))
	errCh := make(chan error, 1)
	go func() { errCh <- app.server.Serve() }()
	assert.Equal(t, http.StatusOK, probe())

	require.NoError(t, app.server.Stop(context.Background()))
	require.NoError(t, <-errCh)
	assert.Equal(t, http.StatusServiceUnavailable, probe())
}

func TestBreakerCheck(t *testing.T) {
	t.Parallel()

	assert.NoError(t, breakerCheck(nil)(context.Background()))

	b := circuitbreaker.New("check", config.CircuitBreakerConfig{
		Enabled:   true,
		Threshold: 1,
		Timeout:   config.Duration(time.Minute),
	})
	require.NotNil(t, b)
	assert.NoError(t, breakerCheck(b)(context.Background()))

	_ = b.Execute(func() error { return assert.AnError })
	assert.ErrorIs(t, breakerCheck(b)(context.Background()), circuitbreaker.ErrOpen)
}

func TestFatalWithSync(t *testing.T) {
	var code int
	exitFunc = func(c int) { code = c }
	t.Cleanup(func() { exitFunc = os.Exit })

	logger, logs := observedLogger()
	fatalWithSync(logger, "boom", observability.String("k", "v"))

	assert.Equal(t, 1, code)
	assert.Equal(t, 1, logs.FilterMessage("boom").Len())
}

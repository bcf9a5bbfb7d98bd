package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vyrodovalexey/parcelgw/internal/config"
	"github.com/vyrodovalexey/parcelgw/internal/observability"
)

// ServiceName is reported by the status endpoint.
const ServiceName = "ParcelMonkey Proxy"

// Status values.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Credential presence values.
const (
	CredentialConfigured = "configured"
	CredentialMissing    = "missing"
)

// TimestampLayout is RFC 3339 with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// DefaultReadinessTimeout bounds a readiness probe.
const DefaultReadinessTimeout = 5 * time.Second

// StatusResponse is the body of GET /api/health.
type StatusResponse struct {
	Status    string       `json:"status"`
	Service   string       `json:"service"`
	Timestamp string       `json:"timestamp"`
	Config    UpstreamInfo `json:"config"`
}

// UpstreamInfo describes the carrier API configuration without revealing
// credentials.
type UpstreamInfo struct {
	BaseURL string `json:"baseUrl"`
	Version string `json:"version"`
	UserID  string `json:"userId"`
	Token   string `json:"token"`
}

// ReadinessResponse is the body of the readiness probe.
type ReadinessResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Uptime    string                 `json:"uptime"`
	Checks    map[string]CheckResult `json:"checks,omitempty"`
}

// CheckResult is the outcome of one readiness check.
type CheckResult struct {
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
	Duration string `json:"duration"`
}

// Handler serves health and probe endpoints.
type Handler struct {
	info      UpstreamInfo
	logger    observability.Logger
	now       func() time.Time
	startTime time.Time
	timeout   time.Duration

	mu     sync.RWMutex
	checks []Check
}

// Option configures a Handler.
type Option func(*Handler)

// WithClock replaces the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		if now != nil {
			h.now = now
		}
	}
}

// WithReadinessTimeout bounds each readiness probe.
func WithReadinessTimeout(d time.Duration) Option {
	return func(h *Handler) {
		if d > 0 {
			h.timeout = d
		}
	}
}

// NewHandler creates a Handler reporting on upstream.
func NewHandler(upstream config.UpstreamConfig, logger observability.Logger, opts ...Option) *Handler {
	if logger == nil {
		logger = observability.NopLogger()
	}

	h := &Handler{
		info: UpstreamInfo{
			BaseURL: upstream.BaseURL,
			Version: upstream.APIVersion,
			UserID:  presence(upstream.HasUserID()),
			Token:   presence(upstream.HasToken()),
		},
		logger:  logger,
		now:     time.Now,
		timeout: DefaultReadinessTimeout,
	}

	for _, opt := range opts {
		opt(h)
	}
	h.startTime = h.now()

	return h
}

func presence(ok bool) string {
	if ok {
		return CredentialConfigured
	}
	return CredentialMissing
}

// AddCheck registers a readiness check.
func (h *Handler) AddCheck(check Check) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checks = append(h.checks, check)
}

// Status builds the status report.
func (h *Handler) Status() StatusResponse {
	return StatusResponse{
		Status:    StatusOK,
		Service:   ServiceName,
		Timestamp: h.now().UTC().Format(TimestampLayout),
		Config:    h.info,
	}
}

// StatusHandler serves GET /api/health. It always answers 200.
func (h *Handler) StatusHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, h.Status())
	}
}

// LivenessHTTPHandler answers {"status":"ok"} while the process runs.
func (h *Handler) LivenessHTTPHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		h.writeJSON(w, http.StatusOK, map[string]string{"status": StatusOK})
	})
}

// ReadinessHTTPHandler runs every registered check. Any failure answers
// 503.
func (h *Handler) ReadinessHTTPHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		resp := h.Readiness(ctx)

		code := http.StatusOK
		if resp.Status != StatusOK {
			code = http.StatusServiceUnavailable
		}
		h.writeJSON(w, code, resp)
	})
}

// Readiness runs the registered checks concurrently.
func (h *Handler) Readiness(ctx context.Context) ReadinessResponse {
	h.mu.RLock()
	checks := make([]Check, len(h.checks))
	copy(checks, h.checks)
	h.mu.RUnlock()

	resp := ReadinessResponse{
		Status:    StatusOK,
		Timestamp: h.now().UTC(),
		Uptime:    h.now().Sub(h.startTime).String(),
	}
	if len(checks) == 0 {
		return resp
	}

	resp.Checks = make(map[string]CheckResult, len(checks))

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, check := range checks {
		wg.Add(1)
		go func(c Check) {
			defer wg.Done()

			start := time.Now()
			err := c.Check(ctx)
			result := CheckResult{Status: StatusOK, Duration: time.Since(start).String()}
			if err != nil {
				result.Status = StatusError
				result.Error = err.Error()
				h.logger.Warn("readiness check failed",
					observability.String("check", c.Name()),
					observability.Error(err),
				)
			}

			mu.Lock()
			defer mu.Unlock()
			resp.Checks[c.Name()] = result
			if err != nil {
				resp.Status = StatusError
			}
		}(check)
	}
	wg.Wait()

	return resp
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to write probe response", observability.Error(err))
	}
}

package carrier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vyrodovalexey/parcelgw/internal/circuitbreaker"
	"github.com/vyrodovalexey/parcelgw/internal/config"
	"github.com/vyrodovalexey/parcelgw/internal/observability"
)

// Request headers understood by the GetQuote API.
const (
	HeaderAPIVersion = "apiversion"
	HeaderUserID     = "userid"
	HeaderToken      = "token"
	quotePath        = "/GetQuote"
)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 4 << 20

// Client calls the GetQuote API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiVersion string
	userID     string
	token      string
	breaker    *circuitbreaker.Breaker
	logger     observability.Logger
	metrics    *observability.Metrics
	tracer     trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithBreaker routes calls through b. A nil breaker is allowed.
func WithBreaker(b *circuitbreaker.Breaker) Option {
	return func(c *Client) {
		c.breaker = b
	}
}

// WithLogger sets the client logger.
func WithLogger(logger observability.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics records upstream call metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithTracerProvider sets the provider for client spans.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) {
		c.tracer = tp.Tracer("parcelgw/carrier")
	}
}

// NewClient creates a Client for the account in cfg.
func NewClient(cfg config.UpstreamConfig, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout.Duration()},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiVersion: cfg.APIVersion,
		userID:     cfg.UserID,
		token:      cfg.Token,
		logger:     observability.NopLogger(),
		tracer:     otel.Tracer("parcelgw/carrier"),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// GetQuote posts req and returns the offered rates sorted by price. It
// fails with ErrNoQuotes when nothing usable comes back, *StatusError for
// non-2xx responses, and circuitbreaker.ErrOpen when the breaker is open.
func (c *Client) GetQuote(ctx context.Context, req *QuoteRequest) ([]Rate, error) {
	ctx, span := c.tracer.Start(ctx, "carrier.GetQuote",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("carrier.origin", req.Origin),
			attribute.String("carrier.destination", req.Destination),
			attribute.String("carrier.collection_date", req.CollectionDate),
		),
	)
	defer span.End()

	logger := c.logger.WithContext(ctx)
	start := time.Now()

	var (
		rates   []Rate
		callErr error
	)
	err := c.breaker.Execute(func() error {
		rates, callErr = c.doGetQuote(ctx, req, logger)
		return tripsBreaker(callErr)
	})
	if err == nil {
		err = callErr
	}

	c.metrics.RecordUpstreamCall(upstreamResult(err), time.Since(start))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("carrier.rates", len(rates)))
	return rates, nil
}

func (c *Client) doGetQuote(ctx context.Context, req *QuoteRequest, logger observability.Logger) ([]Rate, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode quote request: %w", err)
	}

	logger.Debug("sending quote request",
		observability.String("url", c.baseURL+quotePath),
		observability.Any("payload", json.RawMessage(payload)),
	)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+quotePath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build quote request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(HeaderAPIVersion, c.apiVersion)
	httpReq.Header.Set(HeaderUserID, c.userID)
	httpReq.Header.Set(HeaderToken, c.token)
	observability.InjectTraceContext(ctx, httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("quote request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read quote response: %w", err)
	}

	trace.SpanFromContext(ctx).SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, NewStatusError(resp.StatusCode, body)
	}

	quotes, err := decodeQuotes(body)
	if err != nil {
		return nil, err
	}

	rates, skipped := toRates(quotes)
	if skipped > 0 {
		c.metrics.RecordSkippedQuotes(skipped)
		logger.Warn("skipped quotes without a readable price",
			observability.Int("skipped", skipped),
			observability.Int("received", len(quotes)),
		)
	}

	if len(rates) == 0 {
		return nil, ErrNoQuotes
	}

	logger.Info("quotes received",
		observability.Int("received", len(quotes)),
		observability.Int("rates", len(rates)),
	)

	return rates, nil
}

// tripsBreaker filters errors that say nothing about upstream health:
// an empty quote list and 4xx answers.
func tripsBreaker(err error) error {
	if errors.Is(err, ErrNoQuotes) {
		return nil
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode < http.StatusInternalServerError {
		return nil
	}
	return err
}

func upstreamResult(err error) string {
	switch {
	case err == nil:
		return observability.UpstreamResultSuccess
	case errors.Is(err, ErrNoQuotes):
		return observability.UpstreamResultEmpty
	case errors.Is(err, circuitbreaker.ErrOpen):
		return observability.UpstreamResultCircuitOpen
	default:
		return observability.UpstreamResultError
	}
}

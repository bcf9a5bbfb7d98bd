// Package circuitbreaker guards outbound carrier calls with
// github.com/sony/gobreaker.
package circuitbreaker

import (
	"context"
	"errors"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vyrodovalexey/parcelgw/internal/config"
	"github.com/vyrodovalexey/parcelgw/internal/observability"
)

// ErrOpen is returned when the breaker rejects a call without running it.
var ErrOpen = errors.New("circuit breaker is open")

// minFailureRatio is the share of failed calls in an interval that trips
// the breaker once the request threshold is reached.
const minFailureRatio = 0.5

// Breaker wraps gobreaker.CircuitBreaker. A nil *Breaker runs every call.
type Breaker struct {
	cb      *gobreaker.CircuitBreaker
	logger  observability.Logger
	metrics *observability.Metrics
	tracer  trace.Tracer
}

// Option configures a Breaker.
type Option func(*Breaker)

// WithLogger sets the logger for state transitions and rejections.
func WithLogger(logger observability.Logger) Option {
	return func(b *Breaker) {
		b.logger = logger
	}
}

// WithMetrics records state and transitions.
func WithMetrics(m *observability.Metrics) Option {
	return func(b *Breaker) {
		b.metrics = m
	}
}

// WithTracerProvider sets the provider used for state-change span events.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(b *Breaker) {
		b.tracer = tp.Tracer("parcelgw/circuitbreaker")
	}
}

// New builds a breaker named name from cfg. It returns nil when cfg is
// disabled.
func New(name string, cfg config.CircuitBreakerConfig, opts ...Option) *Breaker {
	if !cfg.Enabled {
		return nil
	}

	b := &Breaker{
		logger: observability.NopLogger(),
		tracer: otel.Tracer("parcelgw/circuitbreaker"),
	}
	for _, opt := range opts {
		opt(b)
	}

	threshold := toUint32(cfg.Threshold)
	halfOpen := toUint32(cfg.HalfOpenRequests)
	if halfOpen == 0 {
		halfOpen = 1
	}
	timeout := cfg.Timeout.Duration()

	b.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: halfOpen,
		Interval:    timeout,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < threshold || counts.Requests == 0 {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= minFailureRatio
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: b.onStateChange,
	})

	b.metrics.SetCircuitBreakerState(name, int(gobreaker.StateClosed))

	return b
}

func (b *Breaker) onStateChange(name string, from, to gobreaker.State) {
	b.logger.Warn("circuit breaker state change",
		observability.String("name", name),
		observability.String("from", from.String()),
		observability.String("to", to.String()),
	)

	b.metrics.SetCircuitBreakerState(name, int(to))
	b.metrics.RecordCircuitBreakerTransition(name, from.String(), to.String())

	_, span := b.tracer.Start(context.Background(), "circuitbreaker.state_change",
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	span.AddEvent("state_change", trace.WithAttributes(
		attribute.String("circuitbreaker.name", name),
		attribute.String("circuitbreaker.from", from.String()),
		attribute.String("circuitbreaker.to", to.String()),
	))
	span.End()
}

// Execute runs fn through the breaker. Rejections are reported as ErrOpen.
func (b *Breaker) Execute(fn func() error) error {
	if b == nil {
		return fn()
	}

	_, err := b.cb.Execute(func() (interface{}, error) {
		return nil, fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		b.logger.Warn("circuit breaker rejected call",
			observability.String("name", b.cb.Name()),
			observability.String("state", b.cb.State().String()),
		)
		return ErrOpen
	}
	return err
}

// State returns the breaker state name, or "disabled" for a nil breaker.
func (b *Breaker) State() string {
	if b == nil {
		return "disabled"
	}
	return b.cb.State().String()
}

// counts returns the counters of the current interval.
func (b *Breaker) counts() gobreaker.Counts {
	if b == nil {
		return gobreaker.Counts{}
	}
	return b.cb.Counts()
}

func toUint32(n int) uint32 {
	if n < 0 {
		return 0
	}
	if n > int(^uint32(0)) {
		return ^uint32(0)
	}
	return uint32(n) //nolint:gosec // bounds checked above
}

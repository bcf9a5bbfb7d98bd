package quote

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/vyrodovalexey/parcelgw/internal/calendar"
	"github.com/vyrodovalexey/parcelgw/internal/carrier"
	"github.com/vyrodovalexey/parcelgw/internal/config"
	"github.com/vyrodovalexey/parcelgw/internal/lookup"
	"github.com/vyrodovalexey/parcelgw/internal/observability"
)

// RateFetcher fetches rates from a carrier API. *carrier.Client
// implements it.
type RateFetcher interface {
	GetQuote(ctx context.Context, req *carrier.QuoteRequest) ([]carrier.Rate, error)
}

// Service produces quote envelopes.
type Service struct {
	fetcher  RateFetcher
	clock    calendar.Clock
	location *time.Location
	baseline float64
	logger   observability.Logger
	metrics  *observability.Metrics
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the clock used for collection dates.
func WithClock(clock calendar.Clock) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithLocation sets the calendar location for collection dates.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithBaselineCost sets the fallback baseline price.
func WithBaselineCost(cost float64) Option {
	return func(s *Service) {
		if cost > 0 {
			s.baseline = cost
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(logger observability.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics records quote outcomes.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// NewService creates a Service backed by fetcher.
func NewService(fetcher RateFetcher, opts ...Option) *Service {
	s := &Service{
		fetcher:  fetcher,
		clock:    calendar.SystemClock,
		location: time.UTC,
		baseline: config.DefaultBaselineCost,
		logger:   observability.NopLogger(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Quote fetches rates for req. It never fails: upstream errors produce a
// fallback envelope with Success false and the error message.
func (s *Service) Quote(ctx context.Context, req Request) Envelope {
	logger := s.logger.WithContext(ctx)
	logger.Info("received rate request",
		observability.String("from", req.CollectionCountry.String()),
		observability.String("from_postcode", req.CollectionPostcode.String()),
		observability.String("to", req.DeliveryCountry.String()),
		observability.String("to_postcode", req.DeliveryPostcode.String()),
		observability.String("weight", req.Weight.String()),
	)

	rates, err := s.fetch(ctx, req)
	if err != nil {
		logger.Warn("carrier quote failed, serving fallback rates", observability.Error(err))

		fallback := Fallback(req.CollectionCountry.String(), req.DeliveryCountry.String(), req.Weight, s.baseline)
		s.metrics.RecordQuote(observability.QuoteOutcomeFallback, len(fallback))

		return Envelope{
			Success: false,
			Error:   err.Error(),
			Rates:   fallback,
			Route:   req.Route(),
			Weight:  req.Weight,
		}
	}

	s.metrics.RecordQuote(observability.QuoteOutcomeUpstream, len(rates))

	return Envelope{
		Success: true,
		Rates:   rates,
		Route:   req.Route(),
		Weight:  req.Weight,
	}
}

func (s *Service) fetch(ctx context.Context, req Request) ([]carrier.Rate, error) {
	return s.fetcher.GetQuote(ctx, s.BuildRequest(req))
}

// BuildRequest fills a carrier request from the lookup tables. The
// collection date is the next business day from the service clock. A
// blank weight is sent as the default; any other value goes upstream as
// received.
func (s *Service) BuildRequest(req Request) *carrier.QuoteRequest {
	weight := json.RawMessage(strconv.Itoa(carrier.DefaultWeightKg))
	if !req.Weight.blank() {
		weight = req.Weight.Raw()
	}

	origin := req.CollectionCountry.String()
	destination := req.DeliveryCountry.String()

	return &carrier.QuoteRequest{
		Origin:      origin,
		Destination: destination,
		Boxes: []carrier.Box{{
			Weight: weight,
			Length: carrier.BoxLength,
			Width:  carrier.BoxWidth,
			Height: carrier.BoxHeight,
		}},
		GoodsValue:     carrier.GoodsValue,
		CollectionDate: calendar.CollectionDate(s.clock.Now(), s.location),
		Sender:         contact(carrier.SenderName, carrier.SenderEmail, origin, req.CollectionPostcode.String()),
		Recipient:      contact(carrier.RecipientName, carrier.RecipientEmail, destination, req.DeliveryPostcode.String()),
	}
}

func contact(name, email, country, postcode string) carrier.Contact {
	d := lookup.Defaults(country)
	return carrier.Contact{
		Name:     name,
		Phone:    d.Phone,
		Email:    email,
		Address1: d.Address,
		Town:     d.City,
		County:   d.Region,
		Postcode: lookup.Postcode(country, postcode),
	}
}

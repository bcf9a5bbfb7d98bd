package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/vyrodovalexey/parcelgw/internal/health"
	"github.com/vyrodovalexey/parcelgw/internal/middleware"
	"github.com/vyrodovalexey/parcelgw/internal/quote"
)

// Route paths.
const (
	ShippingRatesPath = "/api/shipping-rates"
	HealthPath        = "/api/health"
)

// QuoteService produces quote envelopes. *quote.Service implements it.
type QuoteService interface {
	Quote(ctx context.Context, req quote.Request) quote.Envelope
}

// RegisterRoutes mounts the API on engine.
func RegisterRoutes(engine *gin.Engine, quotes QuoteService, h *health.Handler) {
	engine.POST(ShippingRatesPath, shippingRatesHandler(quotes))
	engine.GET(HealthPath, h.StatusHandler())
	engine.NoRoute(notFoundHandler)
}

// shippingRatesHandler answers 200 with a quote envelope for any body that
// is valid JSON. Unreadable bodies and invalid JSON are handed to the error
// middleware.
func shippingRatesHandler(quotes QuoteService) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, err := bindQuoteRequest(c)
		if err != nil {
			_ = c.Error(err)
			return
		}

		c.JSON(http.StatusOK, quotes.Quote(c.Request.Context(), req))
	}
}

// bindQuoteRequest reads the body as a quote request. An empty body or a
// JSON value other than an object yields an empty request.
func bindQuoteRequest(c *gin.Context) (quote.Request, error) {
	var req quote.Request

	raw, err := c.GetRawData()
	if err != nil {
		return req, fmt.Errorf("failed to read request body: %w", err)
	}

	body := bytes.TrimSpace(raw)
	if len(body) == 0 {
		return req, nil
	}
	if err := json.Unmarshal(body, new(json.RawMessage)); err != nil {
		return req, fmt.Errorf("invalid request body: %w", err)
	}
	if body[0] != '{' {
		return req, nil
	}

	if err := binding.JSON.BindBody(body, &req); err != nil {
		return req, fmt.Errorf("invalid request body: %w", err)
	}
	return req, nil
}

func notFoundHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, middleware.ErrorResponse{
		Success: false,
		Error:   "Not Found",
		Message: fmt.Sprintf("Cannot %s %s", c.Request.Method, c.Request.URL.Path),
	})
}

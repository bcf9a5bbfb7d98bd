// Package middleware provides the gin middleware used by the parcelgw HTTP
// server.
//
// # Middleware Components
//
//   - RequestID: propagates or generates X-Request-ID
//   - Logging: structured request logging, level by status class
//   - Recovery: converts panics into the JSON error envelope
//   - ErrorHandler: converts errors attached with c.Error into the JSON
//     error envelope
//   - CORS: cross-origin headers and preflight handling
//   - Tracing: OpenTelemetry server spans
//   - Metrics: Prometheus request counters and latency
//   - BodyLimit: caps the request body size
//
// # Usage
//
//	engine := gin.New()
//	engine.Use(
//	    middleware.Recovery(logger),
//	    middleware.RequestID(),
//	    middleware.Logging(logger),
//	    middleware.ErrorHandler(logger),
//	)
package middleware

// Package observability provides logging, metrics, and tracing for parcelgw.
//
// Logging is structured via zap behind the Logger interface:
//
//	logger, err := observability.NewLogger(observability.DefaultLogConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer logger.Sync()
//
// Metrics live in a dedicated Prometheus registry exposed through
// Metrics.Handler, and tracing uses OpenTelemetry with an optional
// OTLP gRPC exporter.
package observability

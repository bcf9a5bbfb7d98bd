// Package health serves the public /api/health report and the liveness and
// readiness probes of the metrics listener.
//
//	h := health.NewHandler(cfg.Upstream, logger)
//	h.AddCheck(health.NewCheckFunc("upstream_circuit", breakerCheck))
//
//	engine.GET("/api/health", h.StatusHandler())
//	mux.Handle("/live", h.LivenessHTTPHandler())
//	mux.Handle("/ready", h.ReadinessHTTPHandler())
package health

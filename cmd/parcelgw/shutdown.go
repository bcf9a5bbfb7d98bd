package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vyrodovalexey/parcelgw/internal/observability"
)

const defaultShutdownTimeout = 30 * time.Second

// run serves until ctx is cancelled or a listener fails, then drains
// in-flight requests within the configured shutdown timeout.
func run(ctx context.Context, app *application, logger observability.Logger) error {
	if err := app.server.Listen(ctx); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(app.server.Serve)

	if app.config.Observability.Metrics.Enabled {
		app.metricsServer = createMetricsServer(app.config.Observability.Metrics, app.metrics, app.health)
		logger.Info("starting metrics server", observability.String("address", app.metricsServer.Addr))

		g.Go(func() error {
			if err := app.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server error: %w", err)
			}
			return nil
		})
	}

	logStartupBanner(app.config, logger)

	g.Go(func() error {
		<-gctx.Done()
		if cause := context.Cause(ctx); cause != nil {
			logger.Info("shutdown requested", observability.String("reason", cause.Error()))
		}
		return shutdown(app, logger)
	})

	err := g.Wait()
	logger.Info("parcelgw stopped")
	return err
}

// shutdown stops the listeners and flushes the tracer.
func shutdown(app *application, logger observability.Logger) error {
	timeout := app.config.Server.ShutdownTimeout.Duration()
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var errs []error

	if app.metricsServer != nil {
		logger.Info("stopping metrics server")
		if err := app.metricsServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop metrics server: %w", err))
		}
	}

	if err := app.server.Stop(ctx); err != nil {
		errs = append(errs, err)
	}

	if err := app.tracer.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to shutdown tracer: %w", err))
	}

	return errors.Join(errs...)
}

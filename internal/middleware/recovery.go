package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/vyrodovalexey/parcelgw/internal/observability"
)

// InternalErrorMessage is the error field of a 500 response.
const InternalErrorMessage = "Internal server error"

// RecoveryConfig holds configuration for the recovery middleware.
type RecoveryConfig struct {
	Logger           observability.Logger
	EnableStackTrace bool
}

// Recovery returns a middleware that recovers from panics.
func Recovery(logger observability.Logger) gin.HandlerFunc {
	return RecoveryWithConfig(RecoveryConfig{
		Logger:           logger,
		EnableStackTrace: true,
	})
}

// RecoveryWithConfig returns a recovery middleware with custom configuration.
// A recovered panic is answered with HTTP 500 and the error envelope.
func RecoveryWithConfig(config RecoveryConfig) gin.HandlerFunc {
	if config.Logger == nil {
		config.Logger = observability.NopLogger()
	}

	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			err, ok := rec.(error)
			if !ok {
				err = fmt.Errorf("%v", rec)
			}

			fields := []observability.Field{
				observability.Error(err),
				observability.String("method", c.Request.Method),
				observability.String("path", c.Request.URL.Path),
				observability.String("client_ip", c.ClientIP()),
			}
			if requestID := GetRequestID(c); requestID != "" {
				fields = append(fields, observability.String("request_id", requestID))
			}
			if config.EnableStackTrace {
				fields = append(fields, observability.String("stack", string(debug.Stack())))
			}

			config.Logger.Error("panic recovered", fields...)

			if span := GetSpan(c); span != nil {
				span.RecordError(fmt.Errorf("panic: %w", err))
			}

			c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
				Success: false,
				Error:   InternalErrorMessage,
				Message: err.Error(),
			})
		}()

		c.Next()
	}
}

package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vyrodovalexey/parcelgw/internal/observability"
)

// PayloadTooLargeMessage is the error field of a 413 response.
const PayloadTooLargeMessage = "Payload Too Large"

// ErrorHandler returns a middleware that answers requests whose handlers
// attached an error with c.Error and wrote nothing. Oversized bodies get
// 413, everything else 500.
func ErrorHandler(logger observability.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = observability.NopLogger()
	}

	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status, title := http.StatusInternalServerError, InternalErrorMessage

		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status, title = http.StatusRequestEntityTooLarge, PayloadTooLargeMessage
		}

		logger.WithContext(c.Request.Context()).Error("request failed",
			observability.Error(err),
			observability.String("method", c.Request.Method),
			observability.String("path", c.Request.URL.Path),
			observability.Int("status", status),
		)

		if span := GetSpan(c); span != nil {
			span.RecordError(err)
		}

		c.AbortWithStatusJSON(status, ErrorResponse{
			Success: false,
			Error:   title,
			Message: err.Error(),
		})
	}
}

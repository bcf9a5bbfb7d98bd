package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vyrodovalexey/parcelgw/internal/observability"
)

// Metrics returns a middleware that records request count, latency and
// in-flight requests. Routes are labelled by their registered pattern.
func Metrics(m *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		start := time.Now()
		m.IncActiveRequests()
		defer m.DecActiveRequests()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unknownRoute
		}
		m.RecordRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}

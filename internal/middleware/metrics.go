package middleware

import (
	"time"

	"github.com/apper-canvas/homescout-pixel-alarm/internal/metrics"
	"github.com/gin-gonic/gin"
)

// Metrics records request counts and latencies labelled by route template,
// so /listings/1 and /listings/2 share a series. Unmatched routes are
// labelled "unmatched".
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		m.ObserveRequest(c.Request.Method, endpoint, c.Writer.Status(), time.Since(start))
	}
}

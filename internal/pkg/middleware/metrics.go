package middleware

import (
	"time"

	"github.com/Bange254/Bttshoes/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware records request count and latency per endpoint.
func MetricsMiddleware() gin.HandlerFunc {
	collector := metrics.GetCollector()
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			// unknown route; avoid a label per random path
			endpoint = "unmatched"
		}
		collector.RecordHTTPRequest(c.Request.Method, endpoint, c.Writer.Status(), time.Since(start))
	}
}

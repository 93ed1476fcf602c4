package middlewares

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"lms-server/internal/infrastructure/metrics"
)

// MetricsMiddleware records request counters and latency per route
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		metrics.RecordRequest(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start).Seconds(),
		)
	}
}

package middleware

import (
	"strconv"
	"time"

	"contech_bot/internal/metrics"

	"github.com/gin-gonic/gin"
)

// unmatchedRoute keeps label cardinality bounded for 404s
const unmatchedRoute = "unmatched"

// Metrics records request duration by route template
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		metrics.HTTPRequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

package middleware

import (
	"strconv"
	"time"

	"werkshift/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics records request counts and latency by route template, so
// /shifts/:id is one series regardless of the id.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveHTTP(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}

package middleware

import (
	"time"

	"termcompass/utils"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware records request counts and latency per route template.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		utils.RecordRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}

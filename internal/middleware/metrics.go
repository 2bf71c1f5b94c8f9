package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-reporting-api/internal/service"
)

// Metrics records request timings under the route pattern. Requests that passed JWT are also counted
// per caller role, so report traffic can be split by who asked for it.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, status, time.Since(start))
		if claims := Claims(c); claims != nil {
			metricsSvc.ObserveReportRequest(route, claims.Role, status)
		}
	}
}

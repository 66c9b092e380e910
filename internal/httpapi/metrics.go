package httpapi

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"supermandi/pos-core/internal/metrics"
)

func recordRequestMetric(c *gin.Context, duration time.Duration) {
	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	metrics.HTTPRequestDuration.
		WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
		Observe(duration.Seconds())
}

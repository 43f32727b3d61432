package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// returns Gin middleware for Prometheus instrumentation, registering its collectors on reg
func Metrics(reg prometheus.Registerer) gin.HandlerFunc {
	factory := promauto.With(reg)

	duration := factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "apierror",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	total := factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "apierror",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		// route pattern, empty for unmatched routes
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		status := strconv.Itoa(c.Writer.Status())

		duration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
		total.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}

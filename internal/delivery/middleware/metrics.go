package middleware

import (
	"time"

	"vidhub/internal/infra/metrics"

	"github.com/labstack/echo/v4"
)

// MetricsMiddleware records count and latency of every request.
type MetricsMiddleware struct {
	metrics *metrics.Metrics
}

// NewMetricsMiddleware creates a new metrics middleware
func NewMetricsMiddleware(m *metrics.Metrics) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: m}
}

// Handle observes the request after the handler chain and the error handler ran.
func (m *MetricsMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)
		if err != nil {
			// Render now so the recorded status is the one the client sees.
			c.Error(err)
		}

		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		m.metrics.ObserveHTTPRequest(c.Request().Method, route, c.Response().Status, time.Since(start))

		return nil
	}
}

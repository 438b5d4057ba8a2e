package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsMiddleware records request counts and latencies for the identity
// endpoints. Labels use the registered route pattern, not the raw URL, so
// query-string variants of the forgot-password and verify-email calls
// collapse into one series.
type MetricsMiddleware struct {
	requests  *prometheus.CounterVec
	latencies *prometheus.HistogramVec
}

func NewMetricsMiddleware(requests *prometheus.CounterVec, latencies *prometheus.HistogramVec) *MetricsMiddleware {
	return &MetricsMiddleware{requests: requests, latencies: latencies}
}

// CollectHTTPMetrics observes every request, including ones the handler
// rejected; the status label carries the final response code.
func (m *MetricsMiddleware) CollectHTTPMetrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			route := c.Path()
			if route == "" {
				route = c.Request().URL.Path
			}
			method := c.Request().Method

			m.requests.WithLabelValues(method, route, strconv.Itoa(c.Response().Status)).Inc()
			m.latencies.WithLabelValues(method, route).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

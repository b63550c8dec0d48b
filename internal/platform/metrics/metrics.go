// Package metrics exposes Prometheus instrumentation for the quality
// gateway: HTTP request metrics, per-measure query outcomes, and connection
// pool statistics.
package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	measureQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "measure_queries_total",
			Help: "Total number of measure queries by outcome",
		},
		[]string{"measure_id", "outcome"},
	)
)

// RecordMeasureQuery counts one measure query. Outcome is "ok" or "error".
// Failures swallowed by the listing sweep still show up here, so operators
// can tell a failing relation apart from one that is merely empty.
func RecordMeasureQuery(measureID string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	measureQueriesTotal.WithLabelValues(measureID, outcome).Inc()
}

// Middleware instruments every request with count, duration and in-flight
// metrics. The route template (not the raw URL) is used as the path label to
// keep cardinality bounded.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			httpRequestsInFlight.Inc()
			defer httpRequestsInFlight.Dec()

			err := next(c)

			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}
			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}

			httpRequestsTotal.WithLabelValues(c.Request().Method, path, strconv.Itoa(status)).Inc()
			httpRequestDuration.WithLabelValues(c.Request().Method, path).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// Handler returns the /metrics endpoint handler.
func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}

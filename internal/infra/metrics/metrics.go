// Package metrics owns the Prometheus registry of the service.
package metrics

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"vidhub/internal/domain/service"
	"vidhub/internal/errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every collector the service reports. It uses a private
// registry so tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	authEvents      *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	rateLimitedHits prometheus.Counter
}

var _ service.AuthEventRecorder = (*Metrics)(nil)

// New creates the registry with the Go and process collectors plus the
// service metrics.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: registry,
		authEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vidhub_auth_events_total",
				Help: "Total number of authentication events by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vidhub_http_requests_total",
				Help: "Total number of HTTP requests served",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "vidhub_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		rateLimitedHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "vidhub_rate_limited_requests_total",
				Help: "Total number of requests rejected by the rate limiter",
			},
		),
	}

	registry.MustRegister(m.authEvents, m.httpRequests, m.httpDuration, m.rateLimitedHits)

	return m
}

// RegisterDB exports the pool statistics of db labelled with dbName.
func (m *Metrics) RegisterDB(db *sql.DB, dbName string) error {
	if err := m.registry.Register(collectors.NewDBStatsCollector(db, dbName)); err != nil {
		return errors.Wrap(err, "failed to register database pool collector")
	}

	return nil
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// AuthEvents exposes the auth event counter.
func (m *Metrics) AuthEvents() *prometheus.CounterVec {
	return m.authEvents
}

// RecordAuthEvent increments the auth event counter.
func (m *Metrics) RecordAuthEvent(operation, outcome string) {
	m.authEvents.WithLabelValues(operation, outcome).Inc()
}

// ObserveHTTPRequest records one served request. route is the matched route
// pattern, never the raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RateLimited exposes the rate limiter rejection counter.
func (m *Metrics) RateLimited() prometheus.Counter {
	return m.rateLimitedHits
}

// RecordRateLimited counts a request rejected by the rate limiter.
func (m *Metrics) RecordRateLimited() {
	m.rateLimitedHits.Inc()
}

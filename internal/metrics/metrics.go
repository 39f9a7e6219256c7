// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors on a private registry so tests and multiple
// routers never collide on the global default registry.
type Metrics struct {
	registry            *prometheus.Registry
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	FavoriteToggles     *prometheus.CounterVec
	Submissions         *prometheus.CounterVec
	RateLimited         prometheus.Counter
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint", "status"},
		),
		FavoriteToggles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "homescout_favorite_toggles_total",
				Help: "Favorite toggles by resulting action",
			},
			[]string{"action"},
		),
		Submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "homescout_submissions_total",
				Help: "Inquiry and contact submissions by outcome",
			},
			[]string{"kind", "outcome"},
		),
		RateLimited: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "homescout_rate_limited_total",
				Help: "Requests rejected by the per-client rate limiter",
			},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.FavoriteToggles,
		m.Submissions,
		m.RateLimited,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRequest records one completed HTTP request.
func (m *Metrics) ObserveRequest(method, endpoint string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	code := strconv.Itoa(status)
	m.HTTPRequestsTotal.WithLabelValues(method, endpoint, code).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint, code).Observe(elapsed.Seconds())
}

// FavoriteToggled records whether a toggle added or removed a favorite.
func (m *Metrics) FavoriteToggled(added bool) {
	if m == nil {
		return
	}
	action := "removed"
	if added {
		action = "added"
	}
	m.FavoriteToggles.WithLabelValues(action).Inc()
}

// Submission records an inquiry or contact outcome ("success", "invalid", "failed").
func (m *Metrics) Submission(kind, outcome string) {
	if m == nil {
		return
	}
	m.Submissions.WithLabelValues(kind, outcome).Inc()
}

// Limited records a request rejected by the rate limiter.
func (m *Metrics) Limited() {
	if m == nil {
		return
	}
	m.RateLimited.Inc()
}

// Package metrics holds the Prometheus collectors shared by both services.
// Collectors live on a private registry so tests can build as many Metrics
// values as they like without duplicate-registration panics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is the set of collectors for one service. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	quotesCreated *prometheus.CounterVec
	notifications *prometheus.CounterVec
	emailsSent    *prometheus.CounterVec
}

// New registers every collector under the given prefix, e.g. "bluelotus_api".
func New(prefix string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		quotesCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_quotes_created_total",
			Help: "Quote submissions by result",
		}, []string{"result"}),
		notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_notifications_total",
			Help: "Notifications dispatched to the email service by kind and outcome",
		}, []string{"kind", "outcome"}),
		emailsSent: factory.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_emails_total",
			Help: "Emails rendered by the email service by kind and outcome",
		}, []string{"kind", "outcome"}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveHTTP records one served request. route is the chi route pattern, not
// the raw path, so ids don't explode label cardinality.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// QuoteCreated counts a quote submission. result is "created", "rejected" or "error".
func (m *Metrics) QuoteCreated(result string) {
	if m == nil {
		return
	}
	m.quotesCreated.WithLabelValues(result).Inc()
}

// Notification counts a dispatch outcome: "sent", "failed", "skipped" or "unavailable".
func (m *Metrics) Notification(kind, outcome string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(kind, outcome).Inc()
}

// Email counts an email handled by the renderer: "sent", "simulated",
// "unconfigured" or "failed".
func (m *Metrics) Email(kind, outcome string) {
	if m == nil {
		return
	}
	m.emailsSent.WithLabelValues(kind, outcome).Inc()
}

// Registry exposes the underlying registry for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

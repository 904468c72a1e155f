package infra

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's Prometheus collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	saves          *prometheus.CounterVec
	sessionsActive prometheus.Gauge
	draftWrites    *prometheus.CounterVec
	requests       *prometheus.HistogramVec
}

// NewMetrics registers every collector.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		saves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jobeditor_save_total",
			Help: "Confirmed saves by outcome.",
		}, []string{"outcome"}),
		sessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "jobeditor_sessions_active",
			Help: "Open edit sessions.",
		}),
		draftWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jobeditor_draft_writes_total",
			Help: "Draft store operations by operation and result.",
		}, []string{"op", "result"}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "jobeditor_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
	reg.MustRegister(
		m.saves, m.sessionsActive, m.draftWrites, m.requests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// SaveOutcome counts one save attempt.
func (m *Metrics) SaveOutcome(outcome string) {
	m.saves.WithLabelValues(outcome).Inc()
}

// SessionsActive exposes the open-session gauge.
func (m *Metrics) SessionsActive() prometheus.Gauge {
	return m.sessionsActive
}

// DraftOp counts one draft store operation.
func (m *Metrics) DraftOp(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.draftWrites.WithLabelValues(op, result).Inc()
}

// ObserveRequest records a request duration in seconds.
func (m *Metrics) ObserveRequest(route, status string, seconds float64) {
	m.requests.WithLabelValues(route, status).Observe(seconds)
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

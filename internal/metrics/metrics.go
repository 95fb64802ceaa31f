// Package metrics exposes Prometheus collectors for the render service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Render outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeInvalid  = "invalid"
	OutcomeOverflow = "overflow"
	OutcomeError    = "error"
)

// Metrics owns a private registry so tests and multiple servers in one
// process do not collide on global registration.
type Metrics struct {
	registry    *prometheus.Registry
	renders     *prometheus.CounterVec
	renderDur   prometheus.Histogram
	httpReqs    *prometheus.CounterVec
	templateUse prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.renders = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "comunicado",
		Name:      "renders_total",
		Help:      "Announcement render attempts by outcome",
	}, []string{"outcome"})
	m.renderDur = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "comunicado",
		Name:      "render_duration_seconds",
		Help:      "Time spent rendering one announcement",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	})
	m.httpReqs = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "comunicado",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route and status",
	}, []string{"method", "route", "status"})
	m.templateUse = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "comunicado",
		Name:      "template_loaded",
		Help:      "1 when the brand template is in use, 0 on the blank fallback",
	})

	m.registry.MustRegister(
		m.renders, m.renderDur, m.httpReqs, m.templateUse,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveRender records one render attempt.
func (m *Metrics) ObserveRender(outcome string, d time.Duration) {
	m.renders.WithLabelValues(outcome).Inc()
	if outcome == OutcomeOK {
		m.renderDur.Observe(d.Seconds())
	}
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method, route, status string) {
	m.httpReqs.WithLabelValues(method, route, status).Inc()
}

// SetTemplateLoaded reports whether renders use the brand template.
func (m *Metrics) SetTemplateLoaded(loaded bool) {
	if loaded {
		m.templateUse.Set(1)
		return
	}
	m.templateUse.Set(0)
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Package metrics exposes Prometheus collectors for the HTTP layer, the complaint lifecycle and mail delivery.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Lifecycle events counted by ComplaintEvent.
const (
	EventCreated     = "created"
	EventAssigned    = "assigned"
	EventTransition  = "transition"
	EventAdvance     = "advance"
	EventDeleted     = "deleted"
	EventAttachment  = "attachment"
	EventStaffDelete = "staff_deleted"
)

// Metrics owns a private registry so several instances (tests) never collide.
type Metrics struct {
	registry     *prometheus.Registry
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	complaints   *prometheus.CounterVec
	mail         *prometheus.CounterVec
	mailQueue    prometheus.Gauge
}

// New registers every collector on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "denuncias",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route template, method and status code.",
		}, []string{"route", "method", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "denuncias",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route template.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		complaints: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "denuncias",
			Name:      "complaint_events_total",
			Help:      "Committed complaint lifecycle events.",
		}, []string{"event"}),
		mail: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "denuncias",
			Name:      "mail_messages_total",
			Help:      "Outbound mail by kind and outcome.",
		}, []string{"kind", "status"}),
		mailQueue: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "denuncias",
			Name:      "mail_queue_depth",
			Help:      "Messages waiting in the mail queue.",
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests, m.httpDuration, m.complaints, m.mail, m.mailQueue,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry is exposed for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(route, method string, code int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	m.httpDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// ComplaintEvent counts a committed lifecycle event.
func (m *Metrics) ComplaintEvent(event string) {
	if m == nil {
		return
	}
	m.complaints.WithLabelValues(event).Inc()
}

// MailOutcome counts a delivery outcome.
func (m *Metrics) MailOutcome(kind, status string) {
	if m == nil {
		return
	}
	m.mail.WithLabelValues(kind, status).Inc()
}

// SetMailQueueDepth publishes the current queue length.
func (m *Metrics) SetMailQueueDepth(n int) {
	if m == nil {
		return
	}
	m.mailQueue.Set(float64(n))
}

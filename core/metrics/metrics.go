package metrics

import (
	"net/http"
	"time"

	"sitemap-manager/core/reconcile"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sitemap"

// Metrics holds the collectors of the service on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	events     *prometheus.CounterVec
	dropped    prometheus.Counter
	publishes  *prometheus.CounterVec
}

// New creates and registers all collectors, including the Go runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Sitemap engine operations by operation and result.",
		}, []string{"operation", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duration of sitemap engine operations.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"operation"}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "file_events_total",
			Help:      "File events received by source and kind.",
		}, []string{"source", "op"}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "watch_events_dropped_total",
			Help:      "Watcher events dropped because the consumer was too slow.",
		}),
		publishes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publishes_total",
			Help:      "Sitemap uploads to object storage by result.",
		}, []string{"result"}),
	}

	m.registry.MustRegister(
		m.operations,
		m.duration,
		m.events,
		m.dropped,
		m.publishes,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Observe implements reconcile.Observer.
func (m *Metrics) Observe(op reconcile.Operation, _ string, d time.Duration, err error) {
	m.operations.WithLabelValues(string(op), result(err)).Inc()
	m.duration.WithLabelValues(string(op)).Observe(d.Seconds())
}

// FileEvent counts an event received from source ("cli", "http", "watch").
func (m *Metrics) FileEvent(source string, op reconcile.EventOp) {
	m.events.WithLabelValues(source, string(op)).Inc()
}

// Dropped counts watcher events lost to a full queue.
func (m *Metrics) Dropped() {
	m.dropped.Inc()
}

// Published counts an upload attempt.
func (m *Metrics) Published(err error) {
	m.publishes.WithLabelValues(result(err)).Inc()
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"restaurant-admin/internal/record"
)

const namespace = "restaurant_admin"

// Metrics owns the collectors of one process. Every instance uses its own
// registry so tests can build as many as they like.
type Metrics struct {
	reg *prometheus.Registry

	Commits  *prometheus.CounterVec
	Records  *prometheus.GaugeVec
	Requests *prometheus.CounterVec
	Latency  *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		Commits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commits_total",
			Help:      "Committed changes per screen and kind.",
		}, []string{"screen", "kind"}),
		Records: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records",
			Help:      "Records currently held per screen.",
		}, []string{"screen"}),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by status code and method.",
		}, []string{"code", "method"}),
		Latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}
	m.reg.MustRegister(
		m.Commits, m.Records, m.Requests, m.Latency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) SetRecords(screen string, n int) {
	m.Records.WithLabelValues(screen).Set(float64(n))
}

// Observer counts commits and refreshes the record gauge with count.
// count runs after the screen lock is released, so it may call Screen.Len.
func Observer[T any](m *Metrics, count func() int) record.Observer[T] {
	return record.ObserverFunc[T](func(_ context.Context, c record.Change[T]) {
		m.Commits.WithLabelValues(c.Screen, string(c.Kind)).Inc()
		if count != nil {
			m.SetRecords(c.Screen, count())
		}
	})
}

// Instrument wraps h with request counting and latency.
func (m *Metrics) Instrument(h http.Handler) http.Handler {
	return promhttp.InstrumentHandlerDuration(m.Latency,
		promhttp.InstrumentHandlerCounter(m.Requests, h))
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

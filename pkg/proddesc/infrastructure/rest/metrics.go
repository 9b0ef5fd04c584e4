package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	GenerationTypeText  = "text"
	GenerationTypeImage = "image"
)

// Metrics the Prometheus collectors exposed at /metrics. Each instance has its own registry so that several servers
// (e.g. in tests) don't collide.
type Metrics struct {
	registry        *prometheus.Registry
	requestCount    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	generationCount *prometheus.CounterVec
	activeRequests  prometheus.Gauge
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total API requests",
		}, []string{"method", "endpoint", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "endpoint"}),
		generationCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "generation_requests_total",
			Help: "Total successful generation requests",
		}, []string{"type"}),
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "active_requests",
			Help: "Number of requests being processed",
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestCount,
		m.requestDuration,
		m.generationCount,
		m.activeRequests,
	)
	return m
}

// Handler serves the text exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveGeneration(generationType string) {
	m.generationCount.WithLabelValues(generationType).Inc()
}

func (m *Metrics) requestStarted() {
	m.activeRequests.Inc()
}

func (m *Metrics) requestFinished(method, endpoint string, status int, duration time.Duration) {
	m.activeRequests.Dec()
	m.requestCount.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

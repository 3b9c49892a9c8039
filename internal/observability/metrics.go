package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the stub backend's request instrumentation.
type Metrics struct {
	Requests *prometheus.CounterVec
	Latency  *prometheus.HistogramVec
	Limited  prometheus.Counter
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nuance",
			Subsystem: "stub",
			Name:      "requests_total",
			Help:      "HTTP requests handled, by path and status code.",
		}, []string{"path", "code"}),
		Latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "nuance",
			Subsystem: "stub",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency, by path.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path"}),
		Limited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nuance",
			Subsystem: "stub",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the per-client rate limiter.",
		}),
	}
	reg.MustRegister(m.Requests, m.Latency, m.Limited)
	return m
}

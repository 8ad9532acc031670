package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics records request durations and outcomes for the gateway surface.
type HTTPMetrics struct {
	duration *prometheus.HistogramVec
	requests *prometheus.CounterVec
}

// NewHTTPMetrics registers the HTTP metrics on the provided registerer.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of gateway HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "status"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Gateway HTTP requests by method and status.",
	}, []string{"method", "status"})
	reg.MustRegister(duration, requests)
	return &HTTPMetrics{
		duration: duration,
		requests: requests,
	}
}

// Observe records one completed request.
func (m *HTTPMetrics) Observe(method string, status int, elapsed time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	labels := prometheus.Labels{"method": method, "status": strconv.Itoa(status)}
	m.duration.With(labels).Observe(elapsed.Seconds())
	m.requests.With(labels).Inc()
}

// UpstreamMetrics records calls the gateway makes to the commerce API.
type UpstreamMetrics struct {
	duration *prometheus.HistogramVec
	failures *prometheus.CounterVec
}

// NewUpstreamMetrics registers the upstream call metrics on the provided registerer.
func NewUpstreamMetrics(reg prometheus.Registerer) *UpstreamMetrics {
	if reg == nil {
		return &UpstreamMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "upstream_call_duration_seconds",
		Help:    "Duration of commerce API calls in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "upstream_call_failures_total",
		Help: "Failed commerce API calls by operation.",
	}, []string{"operation"})
	reg.MustRegister(duration, failures)
	return &UpstreamMetrics{
		duration: duration,
		failures: failures,
	}
}

// ObserveCall records one upstream call outcome.
func (m *UpstreamMetrics) ObserveCall(operation string, elapsed time.Duration, err error) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(operation).Observe(elapsed.Seconds())
	if err != nil {
		m.failures.WithLabelValues(operation).Inc()
	}
}

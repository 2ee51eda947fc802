// Package metrics holds the Prometheus collectors for the editor's
// generation traffic.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the generation metrics behind its own registry, so tests
// and embedders never trip over duplicate registration in the default one.
type Collector struct {
	registry *prometheus.Registry

	GenerationRequests *prometheus.CounterVec
	GenerationDuration prometheus.Histogram
}

// NewCollector creates and registers the collectors under the namespace.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_requests_total",
			Help:      "Total number of text generation requests by outcome.",
		},
		[]string{"outcome"},
	)

	duration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_request_duration_seconds",
			Help:      "Duration of text generation requests in seconds.",
			Buckets:   []float64{.1, .5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
	)

	registry.MustRegister(requests, duration)

	return &Collector{
		registry:           registry,
		GenerationRequests: requests,
		GenerationDuration: duration,
	}
}

// GenerationObserved implements generation.Observer.
func (c *Collector) GenerationObserved(outcome string, d time.Duration) {
	c.GenerationRequests.WithLabelValues(outcome).Inc()
	c.GenerationDuration.Observe(d.Seconds())
}

// Handler exposes the registry for the /metrics endpoint.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

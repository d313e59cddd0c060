// Package metrics exposes the Content Extractor's running counters
// (spec.md §4.2: requests, cache_hits, cache_misses, errors,
// total_response_time) as Prometheus collectors, grounded on
// vjache-cie's promhttp wiring. A Coordinator that never calls Register
// simply accumulates counters without exporting them; the derived
// cache_hit_rate/average_response_time are computed from the Content
// Extractor's own local counters (see internal/content/stats.go), not by
// reading back through the Prometheus client.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ContentExtractorMetrics bundles the counters and histogram described in
// spec.md §4.2 for a single Content Extractor instance.
type ContentExtractorMetrics struct {
	Requests         prometheus.Counter
	CacheHits        prometheus.Counter
	CacheMisses      prometheus.Counter
	Errors           prometheus.Counter
	ResponseTimeHist prometheus.Histogram
}

// NewContentExtractorMetrics constructs a fresh, unregistered metrics
// bundle. Callers that want Prometheus scraping call Register on a
// *prometheus.Registry of their choosing.
func NewContentExtractorMetrics() *ContentExtractorMetrics {
	return &ContentExtractorMetrics{
		Requests: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "repointel",
			Subsystem: "content_extractor",
			Name:      "requests_total",
			Help:      "Total content extraction requests.",
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "repointel",
			Subsystem: "content_extractor",
			Name:      "cache_hits_total",
			Help:      "Content extraction requests served from cache.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "repointel",
			Subsystem: "content_extractor",
			Name:      "cache_misses_total",
			Help:      "Content extraction requests that missed the cache.",
		}),
		Errors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "repointel",
			Subsystem: "content_extractor",
			Name:      "errors_total",
			Help:      "Content extraction requests that failed.",
		}),
		ResponseTimeHist: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "repointel",
			Subsystem: "content_extractor",
			Name:      "response_time_seconds",
			Help:      "Content extraction response time in seconds.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// Register adds all collectors to reg. Safe to call once per registry.
func (m *ContentExtractorMetrics) Register(reg *prometheus.Registry) {
	reg.MustRegister(m.Requests, m.CacheHits, m.CacheMisses, m.Errors, m.ResponseTimeHist)
}

// ObserveDuration records a single request's wall-clock duration.
func (m *ContentExtractorMetrics) ObserveDuration(d time.Duration) {
	m.ResponseTimeHist.Observe(d.Seconds())
}

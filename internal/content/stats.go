package content

import (
	"sync"
	"time"
)

// stats implements the Extractor's own running counters so
// cache_hit_rate and average_response_time (spec.md §4.2's
// "Observability" paragraph) can be derived without reading values back
// through the Prometheus client, which does not expose that capability
// on the collector types this module imports.
type stats struct {
	mu                 sync.Mutex
	requests           int64
	cacheHits          int64
	cacheMisses        int64
	totalResponseTime  time.Duration
}

func (s *stats) addRequest() {
	s.mu.Lock()
	s.requests++
	s.mu.Unlock()
}

func (s *stats) addCacheHit() {
	s.mu.Lock()
	s.cacheHits++
	s.mu.Unlock()
}

func (s *stats) addCacheMiss() {
	s.mu.Lock()
	s.cacheMisses++
	s.mu.Unlock()
}

func (s *stats) addResponseTime(d time.Duration) {
	s.mu.Lock()
	s.totalResponseTime += d
	s.mu.Unlock()
}

// Snapshot is the read-only view of an Extractor's counters.
type Snapshot struct {
	Requests            int64
	CacheHits           int64
	CacheMisses         int64
	CacheHitRate        float64
	AverageResponseTime time.Duration
}

// Stats returns a consistent snapshot of e's running counters.
func (e *Extractor) Stats() Snapshot {
	e.stats.mu.Lock()
	defer e.stats.mu.Unlock()
	snap := Snapshot{
		Requests:    e.stats.requests,
		CacheHits:   e.stats.cacheHits,
		CacheMisses: e.stats.cacheMisses,
	}
	if snap.Requests > 0 {
		snap.CacheHitRate = float64(snap.CacheHits) / float64(snap.Requests)
		snap.AverageResponseTime = e.stats.totalResponseTime / time.Duration(snap.Requests)
	}
	return snap
}

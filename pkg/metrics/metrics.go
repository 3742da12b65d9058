// Package metrics collects real-time performance counters for an
// Engine, adapted from the teacher's pkg/metrics.MetricsCollector
// (there: query/insert/update/delete/transaction counters for a
// document database). This index has no update/delete/transaction
// concept — resources are only ever inserted or searched — so the
// counter set is trimmed to Insert and Search, keeping the teacher's
// atomic-counter-plus-timing-histogram shape.
package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Collector collects insert/search counters and latency histograms for
// an Engine instance.
type Collector struct {
	searchesExecuted uint64
	searchesFailed   uint64
	totalSearchTime  uint64 // nanoseconds

	insertsExecuted uint64
	insertsFailed   uint64
	totalInsertTime uint64 // nanoseconds

	cacheHits   uint64
	cacheMisses uint64

	mu             sync.RWMutex
	searchTimings  *TimingHistogram
	insertTimings  *TimingHistogram

	startTime time.Time
}

// TimingHistogram stores timing data in buckets for histogram generation
// plus a bounded recent-timings window for percentile estimation.
type TimingHistogram struct {
	bucket0_1ms      uint64
	bucket1_10ms     uint64
	bucket10_100ms   uint64
	bucket100_1000ms uint64
	bucket1000ms     uint64

	mu               sync.Mutex
	recentTimings    []time.Duration
	maxRecentTimings int
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{
		searchTimings: NewTimingHistogram(1000),
		insertTimings: NewTimingHistogram(1000),
		startTime:     time.Now(),
	}
}

// NewTimingHistogram creates a TimingHistogram retaining at most
// maxRecent recent timings for percentile estimation.
func NewTimingHistogram(maxRecent int) *TimingHistogram {
	return &TimingHistogram{
		recentTimings:    make([]time.Duration, 0, maxRecent),
		maxRecentTimings: maxRecent,
	}
}

// RecordSearch records one Engine.Search call.
func (mc *Collector) RecordSearch(duration time.Duration, success bool) {
	atomic.AddUint64(&mc.searchesExecuted, 1)
	if !success {
		atomic.AddUint64(&mc.searchesFailed, 1)
	}
	atomic.AddUint64(&mc.totalSearchTime, uint64(duration.Nanoseconds()))
	mc.searchTimings.Record(duration)
}

// RecordInsert records one Engine.Insert call.
func (mc *Collector) RecordInsert(duration time.Duration, success bool) {
	atomic.AddUint64(&mc.insertsExecuted, 1)
	if !success {
		atomic.AddUint64(&mc.insertsFailed, 1)
	}
	atomic.AddUint64(&mc.totalInsertTime, uint64(duration.Nanoseconds()))
	mc.insertTimings.Record(duration)
}

// RecordCacheHit records a pkg/cache hit for a repeated search query.
func (mc *Collector) RecordCacheHit() {
	atomic.AddUint64(&mc.cacheHits, 1)
}

// RecordCacheMiss records a pkg/cache miss for a search query.
func (mc *Collector) RecordCacheMiss() {
	atomic.AddUint64(&mc.cacheMisses, 1)
}

// Record adds a timing to the histogram.
func (th *TimingHistogram) Record(duration time.Duration) {
	ms := duration.Milliseconds()
	switch {
	case ms < 1:
		atomic.AddUint64(&th.bucket0_1ms, 1)
	case ms < 10:
		atomic.AddUint64(&th.bucket1_10ms, 1)
	case ms < 100:
		atomic.AddUint64(&th.bucket10_100ms, 1)
	case ms < 1000:
		atomic.AddUint64(&th.bucket100_1000ms, 1)
	default:
		atomic.AddUint64(&th.bucket1000ms, 1)
	}

	th.mu.Lock()
	defer th.mu.Unlock()
	if len(th.recentTimings) >= th.maxRecentTimings {
		th.recentTimings = th.recentTimings[1:]
	}
	th.recentTimings = append(th.recentTimings, duration)
}

// GetBuckets returns the histogram bucket counts.
func (th *TimingHistogram) GetBuckets() map[string]uint64 {
	return map[string]uint64{
		"0-1ms":      atomic.LoadUint64(&th.bucket0_1ms),
		"1-10ms":     atomic.LoadUint64(&th.bucket1_10ms),
		"10-100ms":   atomic.LoadUint64(&th.bucket10_100ms),
		"100-1000ms": atomic.LoadUint64(&th.bucket100_1000ms),
		">1000ms":    atomic.LoadUint64(&th.bucket1000ms),
	}
}

// GetPercentiles calculates P50, P95, P99 from recent timings.
func (th *TimingHistogram) GetPercentiles() map[string]time.Duration {
	th.mu.Lock()
	defer th.mu.Unlock()

	if len(th.recentTimings) == 0 {
		return map[string]time.Duration{"p50": 0, "p95": 0, "p99": 0}
	}

	sorted := make([]time.Duration, len(th.recentTimings))
	copy(sorted, th.recentTimings)
	for i := 1; i < len(sorted); i++ {
		key := sorted[i]
		j := i - 1
		for j >= 0 && sorted[j] > key {
			sorted[j+1] = sorted[j]
			j--
		}
		sorted[j+1] = key
	}

	p50idx := len(sorted) * 50 / 100
	p95idx := len(sorted) * 95 / 100
	p99idx := len(sorted) * 99 / 100
	return map[string]time.Duration{
		"p50": sorted[p50idx],
		"p95": sorted[p95idx],
		"p99": sorted[p99idx],
	}
}

// Snapshot returns a point-in-time view of every counter.
func (mc *Collector) Snapshot() map[string]interface{} {
	searchesExecuted := atomic.LoadUint64(&mc.searchesExecuted)
	searchesFailed := atomic.LoadUint64(&mc.searchesFailed)
	totalSearchTime := atomic.LoadUint64(&mc.totalSearchTime)

	insertsExecuted := atomic.LoadUint64(&mc.insertsExecuted)
	insertsFailed := atomic.LoadUint64(&mc.insertsFailed)
	totalInsertTime := atomic.LoadUint64(&mc.totalInsertTime)

	cacheHits := atomic.LoadUint64(&mc.cacheHits)
	cacheMisses := atomic.LoadUint64(&mc.cacheMisses)

	var avgSearchTime, avgInsertTime float64
	if searchesExecuted > 0 {
		avgSearchTime = float64(totalSearchTime) / float64(searchesExecuted) / 1e6
	}
	if insertsExecuted > 0 {
		avgInsertTime = float64(totalInsertTime) / float64(insertsExecuted) / 1e6
	}

	var cacheHitRate float64
	if total := cacheHits + cacheMisses; total > 0 {
		cacheHitRate = float64(cacheHits) / float64(total) * 100
	}

	return map[string]interface{}{
		"uptime_seconds": time.Since(mc.startTime).Seconds(),
		"searches": map[string]interface{}{
			"total":              searchesExecuted,
			"failed":             searchesFailed,
			"success_rate":       calculateSuccessRate(searchesExecuted, searchesFailed),
			"avg_duration_ms":    avgSearchTime,
			"timing_histogram":   mc.searchTimings.GetBuckets(),
			"timing_percentiles": mc.searchTimings.GetPercentiles(),
		},
		"inserts": map[string]interface{}{
			"total":              insertsExecuted,
			"failed":             insertsFailed,
			"success_rate":       calculateSuccessRate(insertsExecuted, insertsFailed),
			"avg_duration_ms":    avgInsertTime,
			"timing_histogram":   mc.insertTimings.GetBuckets(),
			"timing_percentiles": mc.insertTimings.GetPercentiles(),
		},
		"cache": map[string]interface{}{
			"hits":     cacheHits,
			"misses":   cacheMisses,
			"hit_rate": cacheHitRate,
		},
	}
}

// Reset zeroes every counter and histogram.
func (mc *Collector) Reset() {
	atomic.StoreUint64(&mc.searchesExecuted, 0)
	atomic.StoreUint64(&mc.searchesFailed, 0)
	atomic.StoreUint64(&mc.totalSearchTime, 0)

	atomic.StoreUint64(&mc.insertsExecuted, 0)
	atomic.StoreUint64(&mc.insertsFailed, 0)
	atomic.StoreUint64(&mc.totalInsertTime, 0)

	atomic.StoreUint64(&mc.cacheHits, 0)
	atomic.StoreUint64(&mc.cacheMisses, 0)

	mc.mu.Lock()
	mc.searchTimings = NewTimingHistogram(1000)
	mc.insertTimings = NewTimingHistogram(1000)
	mc.mu.Unlock()

	mc.startTime = time.Now()
}

func calculateSuccessRate(total, failed uint64) float64 {
	if total == 0 {
		return 0
	}
	succeeded := total - failed
	return float64(succeeded) / float64(total) * 100
}

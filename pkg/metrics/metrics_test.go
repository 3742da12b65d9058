package metrics

import (
	"testing"
	"time"
)

func TestCollectorRecordSearch(t *testing.T) {
	mc := NewCollector()

	mc.RecordSearch(10*time.Millisecond, true)
	mc.RecordSearch(20*time.Millisecond, true)
	mc.RecordSearch(5*time.Millisecond, false)

	snap := mc.Snapshot()
	searches := snap["searches"].(map[string]interface{})

	if searches["total"].(uint64) != 3 {
		t.Errorf("expected 3 total searches, got %v", searches["total"])
	}
	if searches["failed"].(uint64) != 1 {
		t.Errorf("expected 1 failed search, got %v", searches["failed"])
	}
}

func TestCollectorRecordInsert(t *testing.T) {
	mc := NewCollector()

	mc.RecordInsert(1*time.Millisecond, true)
	mc.RecordInsert(2*time.Millisecond, true)
	mc.RecordInsert(3*time.Millisecond, true)

	snap := mc.Snapshot()
	inserts := snap["inserts"].(map[string]interface{})

	if inserts["total"].(uint64) != 3 {
		t.Errorf("expected 3 total inserts, got %v", inserts["total"])
	}
	if inserts["failed"].(uint64) != 0 {
		t.Errorf("expected 0 failed inserts, got %v", inserts["failed"])
	}
}

func TestCollectorCache(t *testing.T) {
	mc := NewCollector()

	mc.RecordCacheHit()
	mc.RecordCacheHit()
	mc.RecordCacheMiss()

	snap := mc.Snapshot()
	cache := snap["cache"].(map[string]interface{})

	if cache["hits"].(uint64) != 2 {
		t.Errorf("expected 2 hits, got %v", cache["hits"])
	}
	if cache["misses"].(uint64) != 1 {
		t.Errorf("expected 1 miss, got %v", cache["misses"])
	}
}

func TestCollectorReset(t *testing.T) {
	mc := NewCollector()

	mc.RecordSearch(10*time.Millisecond, true)
	mc.RecordInsert(5*time.Millisecond, true)

	mc.Reset()

	snap := mc.Snapshot()
	searches := snap["searches"].(map[string]interface{})
	inserts := snap["inserts"].(map[string]interface{})

	if searches["total"].(uint64) != 0 {
		t.Errorf("expected 0 searches after reset, got %v", searches["total"])
	}
	if inserts["total"].(uint64) != 0 {
		t.Errorf("expected 0 inserts after reset, got %v", inserts["total"])
	}
}

func TestCollectorAverageSearchTiming(t *testing.T) {
	mc := NewCollector()

	mc.RecordSearch(10*time.Millisecond, true)
	mc.RecordSearch(20*time.Millisecond, true)
	mc.RecordSearch(30*time.Millisecond, true)

	snap := mc.Snapshot()
	searches := snap["searches"].(map[string]interface{})

	avg := searches["avg_duration_ms"].(float64)
	if avg < 19.9 || avg > 20.1 {
		t.Errorf("expected average ~20ms, got %v", avg)
	}
}

func TestTimingHistogramBuckets(t *testing.T) {
	h := NewTimingHistogram(10)
	h.Record(500 * time.Microsecond)
	h.Record(5 * time.Millisecond)
	h.Record(50 * time.Millisecond)
	h.Record(500 * time.Millisecond)
	h.Record(5 * time.Second)

	buckets := h.GetBuckets()
	if buckets["0-1ms"] != 1 || buckets["1-10ms"] != 1 || buckets["10-100ms"] != 1 ||
		buckets["100-1000ms"] != 1 || buckets[">1000ms"] != 1 {
		t.Fatalf("unexpected bucket distribution: %v", buckets)
	}
}

func TestTimingHistogramPercentilesEmpty(t *testing.T) {
	h := NewTimingHistogram(10)
	p := h.GetPercentiles()
	if p["p50"] != 0 || p["p95"] != 0 || p["p99"] != 0 {
		t.Fatalf("expected zero percentiles for an empty histogram, got %v", p)
	}
}

func TestTimingHistogramPercentilesNonEmpty(t *testing.T) {
	h := NewTimingHistogram(100)
	for i := 1; i <= 100; i++ {
		h.Record(time.Duration(i) * time.Millisecond)
	}

	p := h.GetPercentiles()
	if p["p50"] <= 0 || p["p95"] <= p["p50"] || p["p99"] <= p["p95"] {
		t.Fatalf("expected increasing percentiles, got %v", p)
	}
}

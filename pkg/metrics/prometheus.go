package metrics

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"
)

// PrometheusExporter exports Collector metrics in Prometheus text format.
type PrometheusExporter struct {
	collector       *Collector
	resourceTracker *ResourceTracker
	namespace       string // Metric namespace prefix (e.g., "searchidx")
}

// NewPrometheusExporter creates a PrometheusExporter over collector and
// an optional resourceTracker (nil disables the runtime/IO section).
func NewPrometheusExporter(collector *Collector, resourceTracker *ResourceTracker) *PrometheusExporter {
	return &PrometheusExporter{
		collector:       collector,
		resourceTracker: resourceTracker,
		namespace:       "searchidx",
	}
}

// SetNamespace sets the metric namespace prefix.
func (pe *PrometheusExporter) SetNamespace(namespace string) {
	pe.namespace = namespace
}

// WriteMetrics writes all metrics in Prometheus text format to the writer.
// Format: https://prometheus.io/docs/instrumenting/exposition_formats/
func (pe *PrometheusExporter) WriteMetrics(w io.Writer) error {
	uptime := time.Since(pe.collector.startTime).Seconds()
	if err := pe.writeGauge(w, "uptime_seconds", "Engine uptime in seconds", uptime); err != nil {
		return err
	}

	searchesExecuted := atomic.LoadUint64(&pe.collector.searchesExecuted)
	searchesFailed := atomic.LoadUint64(&pe.collector.searchesFailed)
	totalSearchTime := atomic.LoadUint64(&pe.collector.totalSearchTime)

	if err := pe.writeCounter(w, "searches_total", "Total number of searches executed", searchesExecuted); err != nil {
		return err
	}
	if err := pe.writeCounter(w, "searches_failed_total", "Total number of failed searches", searchesFailed); err != nil {
		return err
	}
	if err := pe.writeCounter(w, "search_duration_nanoseconds_total", "Total search execution time in nanoseconds", totalSearchTime); err != nil {
		return err
	}
	if err := pe.writeHistogram(w, "search_duration_seconds", "Search duration histogram", pe.collector.searchTimings); err != nil {
		return err
	}
	if err := pe.writePercentiles(w, "search_duration_seconds", pe.collector.searchTimings); err != nil {
		return err
	}

	insertsExecuted := atomic.LoadUint64(&pe.collector.insertsExecuted)
	insertsFailed := atomic.LoadUint64(&pe.collector.insertsFailed)
	totalInsertTime := atomic.LoadUint64(&pe.collector.totalInsertTime)

	if err := pe.writeCounter(w, "inserts_total", "Total number of insert operations", insertsExecuted); err != nil {
		return err
	}
	if err := pe.writeCounter(w, "inserts_failed_total", "Total number of failed inserts", insertsFailed); err != nil {
		return err
	}
	if err := pe.writeCounter(w, "insert_duration_nanoseconds_total", "Total insert execution time in nanoseconds", totalInsertTime); err != nil {
		return err
	}
	if err := pe.writeHistogram(w, "insert_duration_seconds", "Insert duration histogram", pe.collector.insertTimings); err != nil {
		return err
	}
	if err := pe.writePercentiles(w, "insert_duration_seconds", pe.collector.insertTimings); err != nil {
		return err
	}

	cacheHits := atomic.LoadUint64(&pe.collector.cacheHits)
	cacheMisses := atomic.LoadUint64(&pe.collector.cacheMisses)
	var cacheHitRate float64
	if total := cacheHits + cacheMisses; total > 0 {
		cacheHitRate = float64(cacheHits) / float64(total)
	}

	if err := pe.writeCounter(w, "cache_hits_total", "Total number of cache hits", cacheHits); err != nil {
		return err
	}
	if err := pe.writeCounter(w, "cache_misses_total", "Total number of cache misses", cacheMisses); err != nil {
		return err
	}
	if err := pe.writeGauge(w, "cache_hit_rate", "Cache hit rate (0-1)", cacheHitRate); err != nil {
		return err
	}

	if pe.resourceTracker != nil {
		stats := pe.resourceTracker.GetStats()

		if err := pe.writeGauge(w, "memory_heap_bytes", "Heap memory in bytes", float64(stats.HeapInUse)); err != nil {
			return err
		}
		if err := pe.writeGauge(w, "memory_stack_bytes", "Stack memory in bytes", float64(stats.StackInUse)); err != nil {
			return err
		}
		if err := pe.writeCounter(w, "memory_allocations_total", "Total memory allocations", stats.AllocBytes); err != nil {
			return err
		}
		if err := pe.writeGauge(w, "memory_objects", "Number of allocated objects", float64(stats.AllocObjects)); err != nil {
			return err
		}
		if err := pe.writeGauge(w, "goroutines", "Number of goroutines", float64(stats.NumGoroutines)); err != nil {
			return err
		}
		if err := pe.writeCounter(w, "io_bytes_read_total", "Total bytes read", stats.BytesRead); err != nil {
			return err
		}
		if err := pe.writeCounter(w, "io_bytes_written_total", "Total bytes written", stats.BytesWritten); err != nil {
			return err
		}
		if err := pe.writeCounter(w, "io_read_operations_total", "Total read operations", stats.ReadsCompleted); err != nil {
			return err
		}
		if err := pe.writeCounter(w, "io_write_operations_total", "Total write operations", stats.WritesCompleted); err != nil {
			return err
		}
		if err := pe.writeCounter(w, "gc_runs_total", "Total garbage collection runs", uint64(stats.GCRuns)); err != nil {
			return err
		}
		if err := pe.writeGauge(w, "gc_pause_nanoseconds", "Last GC pause time in nanoseconds", float64(stats.LastGCTimeNs)); err != nil {
			return err
		}
		if err := pe.writeGauge(w, "cpu_count", "Number of CPUs", float64(stats.NumCPU)); err != nil {
			return err
		}
	}

	return nil
}

func (pe *PrometheusExporter) writeCounter(w io.Writer, name, help string, value uint64) error {
	metricName := pe.namespace + "_" + name
	_, err := fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s counter\n%s %d\n",
		metricName, help, metricName, metricName, value)
	return err
}

func (pe *PrometheusExporter) writeGauge(w io.Writer, name, help string, value float64) error {
	metricName := pe.namespace + "_" + name
	_, err := fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s gauge\n%s %g\n",
		metricName, help, metricName, metricName, value)
	return err
}

// writeHistogram writes cumulative Prometheus histogram buckets derived
// from a TimingHistogram's fixed bucket boundaries.
func (pe *PrometheusExporter) writeHistogram(w io.Writer, name, help string, th *TimingHistogram) error {
	metricName := pe.namespace + "_" + name
	if _, err := fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s histogram\n", metricName, help, metricName); err != nil {
		return err
	}

	buckets := th.GetBuckets()
	var cumulative uint64

	cumulative += buckets["0-1ms"]
	if _, err := fmt.Fprintf(w, "%s_bucket{le=\"0.001\"} %d\n", metricName, cumulative); err != nil {
		return err
	}
	cumulative += buckets["1-10ms"]
	if _, err := fmt.Fprintf(w, "%s_bucket{le=\"0.01\"} %d\n", metricName, cumulative); err != nil {
		return err
	}
	cumulative += buckets["10-100ms"]
	if _, err := fmt.Fprintf(w, "%s_bucket{le=\"0.1\"} %d\n", metricName, cumulative); err != nil {
		return err
	}
	cumulative += buckets["100-1000ms"]
	if _, err := fmt.Fprintf(w, "%s_bucket{le=\"1.0\"} %d\n", metricName, cumulative); err != nil {
		return err
	}
	cumulative += buckets[">1000ms"]
	if _, err := fmt.Fprintf(w, "%s_bucket{le=\"+Inf\"} %d\n", metricName, cumulative); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "%s_count %d\n", metricName, cumulative); err != nil {
		return err
	}

	return nil
}

func (pe *PrometheusExporter) writePercentiles(w io.Writer, baseName string, th *TimingHistogram) error {
	percentiles := th.GetPercentiles()

	if err := pe.writeGauge(w, baseName+"_p50", fmt.Sprintf("50th percentile of %s", baseName), percentiles["p50"].Seconds()); err != nil {
		return err
	}
	if err := pe.writeGauge(w, baseName+"_p95", fmt.Sprintf("95th percentile of %s", baseName), percentiles["p95"].Seconds()); err != nil {
		return err
	}
	if err := pe.writeGauge(w, baseName+"_p99", fmt.Sprintf("99th percentile of %s", baseName), percentiles["p99"].Seconds()); err != nil {
		return err
	}

	return nil
}

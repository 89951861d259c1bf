package metrics

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"relentless-fetch/internal/models"
)

var (
	// Counters for fetch activity exposed on /metrics.
	// started: tasks launched; succeeded/failed/timed_out: terminal outcomes.
	tasksStarted   uint64
	tasksSucceeded uint64
	tasksFailed    uint64
	tasksTimedOut  uint64
	pagesWritten   uint64
	pageWriteFails uint64
	recordFailures uint64
	inFlight       int64 // gauge: tasks between start and terminal outcome

	// Histogram buckets for page fetch latency (seconds); +Inf is implicit.
	fetchLatencyBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5}
	// Counts per bucket; last slot holds the +Inf bucket.
	fetchLatencyCounts = make([]uint64, len(fetchLatencyBuckets)+1)
	fetchLatencySumNs  uint64
	fetchLatencyCount  uint64
)

// TaskStarted records a task launch.
func TaskStarted() {
	atomic.AddUint64(&tasksStarted, 1)
	atomic.AddInt64(&inFlight, 1)
}

// TaskFinished records a terminal outcome and releases the in-flight slot.
func TaskFinished(status models.OutcomeStatus) {
	atomic.AddInt64(&inFlight, -1)
	switch status {
	case models.StatusSucceeded:
		atomic.AddUint64(&tasksSucceeded, 1)
	case models.StatusFailed:
		atomic.AddUint64(&tasksFailed, 1)
	case models.StatusTimedOut:
		atomic.AddUint64(&tasksTimedOut, 1)
	}
}

// PageWritten records a sink write result.
func PageWritten(err error) {
	if err != nil {
		atomic.AddUint64(&pageWriteFails, 1)
		return
	}
	atomic.AddUint64(&pagesWritten, 1)
}

// RecordFailed counts a recorder (Kafka, Neo4j) that could not accept an outcome.
func RecordFailed() {
	atomic.AddUint64(&recordFailures, 1)
}

// ObserveFetchLatency updates the fetch latency histogram.
func ObserveFetchLatency(duration time.Duration) {
	if duration <= 0 {
		return
	}
	seconds := duration.Seconds()
	bucketIndex := len(fetchLatencyBuckets)
	for i, bound := range fetchLatencyBuckets {
		if seconds <= bound {
			bucketIndex = i
			break
		}
	}
	atomic.AddUint64(&fetchLatencyCounts[bucketIndex], 1)
	atomic.AddUint64(&fetchLatencySumNs, uint64(duration.Nanoseconds()))
	atomic.AddUint64(&fetchLatencyCount, 1)
}

// Reset zeroes every counter. Tests only.
func Reset() {
	for _, c := range []*uint64{&tasksStarted, &tasksSucceeded, &tasksFailed, &tasksTimedOut,
		&pagesWritten, &pageWriteFails, &recordFailures, &fetchLatencySumNs, &fetchLatencyCount} {
		atomic.StoreUint64(c, 0)
	}
	for i := range fetchLatencyCounts {
		atomic.StoreUint64(&fetchLatencyCounts[i], 0)
	}
	atomic.StoreInt64(&inFlight, 0)
}

// StartServer serves /metrics on addr until ctx is cancelled.
func StartServer(ctx context.Context, addr string) {
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", Handler)

	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("metrics shutdown error: %v", err)
		}
	}()

	go func() {
		log.Printf("metrics listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("metrics server error: %v", err)
		}
	}()
}

// Handler writes all counters in Prometheus text format.
func Handler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	w.WriteHeader(http.StatusOK)
	body := fmt.Sprintf(
		"relentless_fetch_up 1\n"+
			"relentless_fetch_tasks_started_total %d\n"+
			"relentless_fetch_tasks_succeeded_total %d\n"+
			"relentless_fetch_tasks_failed_total %d\n"+
			"relentless_fetch_tasks_timed_out_total %d\n"+
			"relentless_fetch_pages_written_total %d\n"+
			"relentless_fetch_page_write_errors_total %d\n"+
			"relentless_fetch_record_errors_total %d\n"+
			"relentless_fetch_in_flight %d\n",
		atomic.LoadUint64(&tasksStarted),
		atomic.LoadUint64(&tasksSucceeded),
		atomic.LoadUint64(&tasksFailed),
		atomic.LoadUint64(&tasksTimedOut),
		atomic.LoadUint64(&pagesWritten),
		atomic.LoadUint64(&pageWriteFails),
		atomic.LoadUint64(&recordFailures),
		atomic.LoadInt64(&inFlight),
	)
	var histogram strings.Builder
	histogram.WriteString("# HELP relentless_fetch_latency_seconds Page fetch latency.\n")
	histogram.WriteString("# TYPE relentless_fetch_latency_seconds histogram\n")
	appendHistogram(&histogram, "relentless_fetch_latency_seconds", fetchLatencyBuckets,
		fetchLatencyCounts, &fetchLatencySumNs, &fetchLatencyCount, "%.2f")

	_, _ = w.Write([]byte(body + histogram.String()))
}

// appendHistogram writes a Prometheus histogram (buckets, +Inf, sum, count) to sb.
// counts must have len(buckets)+1 elements.
func appendHistogram(sb *strings.Builder, name string, buckets []float64, counts []uint64, sumNs, count *uint64, leFmt string) {
	var cumulative uint64
	for i, bound := range buckets {
		cumulative += atomic.LoadUint64(&counts[i])
		sb.WriteString(fmt.Sprintf("%s_bucket{le=\"%s\"} %d\n", name, fmt.Sprintf(leFmt, bound), cumulative))
	}
	cumulative += atomic.LoadUint64(&counts[len(buckets)])
	sb.WriteString(fmt.Sprintf("%s_bucket{le=\"+Inf\"} %d\n", name, cumulative))
	sumSeconds := float64(atomic.LoadUint64(sumNs)) / float64(time.Second)
	sb.WriteString(fmt.Sprintf("%s_sum %.6f\n", name, sumSeconds))
	sb.WriteString(fmt.Sprintf("%s_count %d\n", name, atomic.LoadUint64(count)))
}

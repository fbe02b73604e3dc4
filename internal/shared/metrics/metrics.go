package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	resolutionsTotal         atomic.Uint64
	transitionsTotal         atomic.Uint64
	notificationsSentTotal   atomic.Uint64
	notificationsFailedTotal atomic.Uint64
	sweepsTotal              atomic.Uint64

	resolutionDuration = newHistogram([]float64{0.5, 1, 2.5, 5, 10, 25, 50, 100, 250})
)

// IncResolutions increments the resolutions counter.
func IncResolutions() {
	resolutionsTotal.Add(1)
}

// IncTransitionsRecorded increments the recorded-transitions counter.
func IncTransitionsRecorded() {
	transitionsTotal.Add(1)
}

// IncNotificationsSent increments the dispatched-notifications counter.
func IncNotificationsSent() {
	notificationsSentTotal.Add(1)
}

// IncNotificationsFailed increments the failed-notifications counter.
func IncNotificationsFailed() {
	notificationsFailedTotal.Add(1)
}

// IncSweeps increments the completed-sweep counter.
func IncSweeps() {
	sweepsTotal.Add(1)
}

// ObserveResolutionDurationMs records one resolution duration in milliseconds.
func ObserveResolutionDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	resolutionDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "lifecycle_resolutions_total", "Total lifecycle resolutions performed", resolutionsTotal.Load())
	writeCounter(&buf, "lifecycle_transitions_total", "Total state transitions recorded", transitionsTotal.Load())
	writeCounter(&buf, "notifications_sent_total", "Total lifecycle notifications dispatched", notificationsSentTotal.Load())
	writeCounter(&buf, "notifications_failed_total", "Total lifecycle notification dispatch failures", notificationsFailedTotal.Load())
	writeCounter(&buf, "lifecycle_sweeps_total", "Total completed account sweeps", sweepsTotal.Load())
	writeHistogram(&buf, "lifecycle_resolution_duration_ms", "Resolution duration in milliseconds", resolutionDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

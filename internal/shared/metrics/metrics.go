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

type counter struct {
	name, help string
	v          atomic.Uint64
}

var (
	cvUploads          = &counter{name: "cv_uploads_total", help: "CV files accepted for processing"}
	cvExtractionFailed = &counter{name: "cv_extraction_failed_total", help: "CV uploads that failed text or LLM extraction"}
	atsScored          = &counter{name: "ats_scored_total", help: "ATS score calculations"}
	applications       = &counter{name: "applications_submitted_total", help: "Job applications submitted"}
	httpPanics         = &counter{name: "http_panics_total", help: "Requests that panicked in a handler"}
	rateLimited        = &counter{name: "http_rate_limited_total", help: "Requests rejected by the rate limiter"}

	atsScore    = newHistogram("ats_score", "Distribution of final ATS scores", []float64{20, 40, 50, 60, 70, 80, 90, 100})
	llmDuration = newHistogram("llm_duration_ms", "LLM extraction latency in milliseconds", []float64{250, 500, 1000, 2000, 5000, 10000, 30000, 60000, 120000})

	counters   = []*counter{cvUploads, cvExtractionFailed, atsScored, applications, httpPanics, rateLimited}
	histograms = []*histogram{atsScore, llmDuration}
)

func IncCVUploads()          { cvUploads.v.Add(1) }
func IncCVExtractionFailed() { cvExtractionFailed.v.Add(1) }
func IncApplications()       { applications.v.Add(1) }
func IncHTTPPanics()         { httpPanics.v.Add(1) }
func IncRateLimited()        { rateLimited.v.Add(1) }

// ObserveATSScore counts a scoring run and records its final score.
func ObserveATSScore(score int) {
	atsScored.v.Add(1)
	atsScore.Observe(float64(score))
}

// ObserveLLMDurationMs records an extraction call duration in milliseconds.
func ObserveLLMDurationMs(value float64) {
	llmDuration.Observe(max(value, 0))
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
	for _, c := range counters {
		fmt.Fprintf(&buf, "# HELP %s %s\n# TYPE %s counter\n%s %d\n", c.name, c.help, c.name, c.name, c.v.Load())
	}
	for _, h := range histograms {
		h.write(&buf)
	}
	return buf.String()
}

type histogram struct {
	name, help string
	mu         sync.Mutex
	bounds     []float64
	counts     []uint64
	sum        float64
	count      uint64
}

func newHistogram(name, help string, bounds []float64) *histogram {
	return &histogram{name: name, help: help, bounds: bounds, counts: make([]uint64, len(bounds))}
}

// Observe adds value to the first bucket whose bound covers it; write
// accumulates buckets so the exposition is cumulative.
func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.bounds {
		if value <= bound {
			h.counts[i]++
			return
		}
	}
}

func (h *histogram) write(buf *bytes.Buffer) {
	h.mu.Lock()
	counts := append([]uint64(nil), h.counts...)
	sum, count := h.sum, h.count
	h.mu.Unlock()

	fmt.Fprintf(buf, "# HELP %s %s\n# TYPE %s histogram\n", h.name, h.help, h.name)
	var cumulative uint64
	for i, bound := range h.bounds {
		cumulative += counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", h.name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", h.name, count)
	fmt.Fprintf(buf, "%s_sum %s\n", h.name, formatFloat(sum))
	fmt.Fprintf(buf, "%s_count %d\n", h.name, count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

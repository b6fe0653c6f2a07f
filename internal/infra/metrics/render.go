package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(renderLatencyMs, renderSlotWaitMs)
}

var (
	renderLatencyMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "render_latency_ms",
			Help:    "Render latency distribution in milliseconds, per format.",
			Buckets: []float64{50, 100, 250, 500, 1000, 2000, 4000, 8000, 16000},
		},
		[]string{"format", "success"},
	)

	renderSlotWaitMs = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "render_slot_wait_ms",
			Help:    "Time spent waiting for a free browser slot in milliseconds.",
			Buckets: []float64{0, 10, 50, 100, 500, 1000, 5000, 15000},
		},
	)
)

func ObserveRender(format string, latencyMs int, success bool) {
	renderLatencyMs.WithLabelValues(norm(format), strconv.FormatBool(success)).Observe(float64(latencyMs))
}

func ObserveRenderSlotWait(waitMs int) {
	renderSlotWaitMs.Observe(float64(waitMs))
}

package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(draftTokensIn, draftTokensOut, draftTokensTotal, draftLatencyMs)
}

var (
	draftTokensIn = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "draft_tokens_in",
			Help: "Sum of prompt (input) tokens per drafting provider.",
		},
		[]string{"provider"},
	)

	draftTokensOut = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "draft_tokens_out",
			Help: "Sum of completion (output) tokens per drafting provider.",
		},
		[]string{"provider"},
	)

	draftTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "draft_tokens_total",
			Help: "Sum of total tokens per drafting provider.",
		},
		[]string{"provider"},
	)

	draftLatencyMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "draft_calls_latency_ms",
			Help:    "Drafting call latency distribution in milliseconds.",
			Buckets: []float64{100, 250, 500, 1000, 2000, 4000, 8000, 16000, 30000, 60000},
		},
		[]string{"provider", "success"},
	)
)

func ObserveDraft(provider string, tokensIn, tokensOut, tokensTotal, latencyMs int, success bool) {
	draftTokensIn.WithLabelValues(norm(provider)).Add(float64(tokensIn))
	draftTokensOut.WithLabelValues(norm(provider)).Add(float64(tokensOut))
	draftTokensTotal.WithLabelValues(norm(provider)).Add(float64(tokensTotal))
	draftLatencyMs.WithLabelValues(norm(provider), strconv.FormatBool(success)).Observe(float64(latencyMs))
}

package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(renderJobsProcessedTotal) }

var renderJobsProcessedTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "render_jobs_processed_total",
		Help: "Total number of async generation jobs processed, labeled by status.",
	},
	[]string{"status"}, // 'completed', 'failed'
)

func IncRenderJob(status string) {
	renderJobsProcessedTotal.WithLabelValues(norm(status)).Inc()
}

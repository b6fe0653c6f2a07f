package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

func init() { register(artifactBytesUploaded, artifactUploadsTotal) }

var (
	artifactBytesUploaded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "artifact_bytes_uploaded_total",
			Help: "Total artifact bytes uploaded to object storage.",
		},
	)

	artifactUploadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "artifact_uploads_total",
			Help: "Artifact upload attempts, labeled by success.",
		},
		[]string{"success"},
	)
)

func ObserveArtifactUpload(size int, success bool) {
	artifactUploadsTotal.WithLabelValues(strconv.FormatBool(success)).Inc()
	if success {
		artifactBytesUploaded.Add(float64(size))
	}
}

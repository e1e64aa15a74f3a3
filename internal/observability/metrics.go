package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ConversionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vexport_conversions_total",
		Help: "Total number of conversion operations, by grammar, format, and outcome.",
	}, []string{"grammar", "format", "status"})

	ConversionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "vexport_conversion_seconds",
		Help:    "Wall-clock time spent converting one spec.",
		Buckets: prometheus.DefBuckets,
	}, []string{"grammar", "format"})

	ArtifactUploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vexport_artifact_uploads_total",
		Help: "Total number of artifact uploads to the object store, by outcome.",
	}, []string{"status"})

	ArtifactBytesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vexport_artifact_bytes_total",
		Help: "Total bytes of rendered artifacts uploaded to the object store.",
	})
)

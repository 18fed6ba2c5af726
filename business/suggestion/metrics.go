package suggestion

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	PipelineStepDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "suggestion_pipeline_step_duration_seconds",
			Help:    "Duration of each suggestion pipeline step by outcome.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"step", "outcome"},
	)

	PipelineRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "suggestion_pipeline_requests_total",
			Help: "Count of suggestion requests by intent and terminal outcome.",
		},
		[]string{"intent", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(PipelineStepDuration, PipelineRequestsTotal)
}

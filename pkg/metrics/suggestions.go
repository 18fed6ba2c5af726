package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the suggestion HTTP handler
	SuggestionRequestLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "suggestion_request_latency_seconds",
		Help:    "Latency of the create-suggestions handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of suggestion requests served
	SuggestionRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "suggestion_requests_total",
		Help: "Total number of suggestion requests",
	})
)

func Init() {
	prometheus.MustRegister(
		SuggestionRequestLatency,
		SuggestionRequests,
	)
}

package quota

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	AdmissionsGranted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quota_admissions_granted_total",
			Help: "Count of admitted requests by grant mode (charged, premium, anonymous).",
		},
		[]string{"mode"},
	)

	AdmissionsDenied = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quota_admissions_denied_total",
			Help: "Count of denied requests by reason (exhausted, store_error).",
		},
		[]string{"reason"},
	)
)

func init() {
	prometheus.MustRegister(AdmissionsGranted, AdmissionsDenied)
}

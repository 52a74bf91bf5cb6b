package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SubmissionOutcomes counts reservation submission attempts by their
// terminal outcome (succeeded, failed, pending for in-flight rejections).
var SubmissionOutcomes = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "reservation_submissions_total",
		Help: "Reservation submission attempts by outcome.",
	},
	[]string{"outcome"},
)

// UpstreamRequests counts calls to the upstream API by endpoint and result.
var UpstreamRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "upstream_requests_total",
		Help: "Requests issued to the upstream API.",
	},
	[]string{"endpoint", "result"},
)

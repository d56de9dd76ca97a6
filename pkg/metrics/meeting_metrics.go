// Package metrics provides Prometheus metrics for the meeting backend.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// meetingAssignmentsTotal records room assignment outcomes.
	// Labels:
	//   - outcome: "joined" (placed into an existing room),
	//     "created" (new room provisioned) or "error"
	meetingAssignmentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meeting_assignments_total",
			Help: "Total number of room assignment requests by outcome",
		},
		[]string{"outcome"},
	)

	// providerRequestsTotal records calls to the video-room provider API.
	// Labels:
	//   - operation: "create_room", "delete_room" or "send_action"
	//   - status: "success" or "error"
	providerRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_requests_total",
			Help: "Total number of video-room provider API calls",
		},
		[]string{"operation", "status"},
	)

	// providerRequestDuration records the latency of provider API calls.
	// Buckets cover the expected range of a single outbound HTTP call.
	providerRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "provider_request_duration_seconds",
			Help:    "Duration of video-room provider API calls in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"operation"},
	)
)

func init() {
	prometheus.MustRegister(meetingAssignmentsTotal)
	prometheus.MustRegister(providerRequestsTotal)
	prometheus.MustRegister(providerRequestDuration)
}

// RecordAssignment records the outcome of one room assignment request.
func RecordAssignment(outcome string) {
	meetingAssignmentsTotal.WithLabelValues(outcome).Inc()
}

// RecordProviderRequest records a completed provider API call.
func RecordProviderRequest(operation, status string) {
	providerRequestsTotal.WithLabelValues(operation, status).Inc()
}

// RecordProviderDuration records the latency of a provider API call.
func RecordProviderDuration(operation string, seconds float64) {
	providerRequestDuration.WithLabelValues(operation).Observe(seconds)
}

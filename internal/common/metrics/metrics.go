// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for RequirementsSubmitted.
const (
	OutcomeRejected = "rejected"
	OutcomeNoMatch  = "no_match"
	OutcomeNotified = "notified"
	OutcomeFailed   = "failed"
)

var (
	RequirementsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "requirements_submitted_total",
			Help: "Total number of requirement submissions by outcome",
		},
		[]string{"outcome"},
	)

	RequirementSubmissionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "requirement_submission_duration_seconds",
			Help:    "Duration of requirement submission handling in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)

	NotificationsDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_dispatched_total",
			Help: "Total number of supplier notifications by mode and status",
		},
		[]string{"mode", "status"},
	)

	NotificationsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "notifications_in_flight",
			Help: "Number of notification dispatches currently running",
		},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests served",
		},
		[]string{"method", "route", "status"},
	)
)

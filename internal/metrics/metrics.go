package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Submission pipeline metrics
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "formgate_submissions_total",
			Help: "Total number of webhook submissions received, by classified kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	ProcessingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "formgate_processing_duration_seconds",
			Help:    "End-to-end duration of webhook request processing in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Persistence metrics
	PersistenceErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "formgate_persistence_errors_total",
			Help: "Total number of failed data API writes, by table",
		},
		[]string{"table"},
	)

	// Notification metrics
	NotificationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "formgate_notification_failures_total",
			Help: "Total number of failed notification channel deliveries",
		},
		[]string{"channel"},
	)

	// Rate limiting metrics
	RateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "formgate_rate_limit_hits_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
		[]string{"key"},
	)
)

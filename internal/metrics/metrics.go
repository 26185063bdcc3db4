package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DraftsSaved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recruiting_drafts_saved_total",
			Help: "Total number of draft saves by outcome",
		},
		[]string{"outcome"},
	)

	ApplicationsSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recruiting_applications_submitted_total",
			Help: "Total number of submitted applications",
		},
	)

	StatusTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recruiting_status_transitions_total",
			Help: "Total number of application status transitions",
		},
		[]string{"from", "to"},
	)

	ScoresRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recruiting_scores_recorded_total",
			Help: "Total number of reviewer scores written",
		},
	)

	CatalogMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recruiting_catalog_mutations_total",
			Help: "Total number of question catalog mutations",
		},
		[]string{"op"},
	)

	NotificationsDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recruiting_notifications_dispatched_total",
			Help: "Total number of notification deliveries by channel and outcome",
		},
		[]string{"channel", "outcome"},
	)

	EmailQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recruiting_email_queue_depth",
			Help: "Number of emails waiting for a worker",
		},
	)

	JobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "recruiting_job_duration_seconds",
			Help: "Duration of scheduled job runs in seconds",
		},
		[]string{"job"},
	)
)

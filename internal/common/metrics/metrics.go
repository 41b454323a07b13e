// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "worker_job_duration_seconds",
			Help:    "Duration of job processing in seconds",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	FallbackResponses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_fallback_responses_total",
			Help: "Fallback replies generated, by strategy",
		},
		[]string{"strategy"},
	)

	CannedResponses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "assistant_canned_responses_total",
			Help: "Replies answered from the canned response table",
		},
	)

	SuggestionsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_suggestions_served_total",
			Help: "Suggestions returned to the panel, by lock state",
		},
		[]string{"state"},
	)

	ConnectorStoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_connector_store_errors_total",
			Help: "Connector state lookups that failed and fell back to the empty context",
		},
		[]string{"task_type"},
	)
)

// Suggestion lock states used as the SuggestionsServed label.
const (
	StateLocked   = "locked"
	StateUnlocked = "unlocked"
)

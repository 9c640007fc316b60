package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	generatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nutrirec_recommendations_generated_total",
			Help: "Recommendations generated and saved, by job type",
		},
		[]string{"type"},
	)
	failedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nutrirec_recommendations_failed_total",
			Help: "Recommendation invocations that failed, by error kind",
		},
		[]string{"kind"},
	)
	warningsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nutrirec_recommendations_warned_total",
			Help: "Recommendations saved with validation warnings",
		},
	)
	jobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nutrirec_job_duration_seconds",
			Help:    "Duration of recommendation jobs",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"type"},
	)
)

func RecordGenerated(jobType string) {
	generatedTotal.WithLabelValues(jobType).Inc()
}

// RecordFailed kind 為空時記成 unknown
func RecordFailed(kind string) {
	if kind == "" {
		kind = "unknown"
	}
	failedTotal.WithLabelValues(kind).Inc()
}

func RecordWarned() {
	warningsTotal.Inc()
}

func ObserveJob(jobType string, seconds float64) {
	jobDuration.WithLabelValues(jobType).Observe(seconds)
}

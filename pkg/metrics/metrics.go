// Package metrics provides Prometheus metrics for the assigner service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "assigner"

// Engine outcome labels.
const (
	OutcomeOK          = "ok"
	OutcomeNotFound    = "not_found"
	OutcomeNoCandidate = "no_candidate"
	OutcomeNoSchedule  = "no_schedule"
	OutcomeFlowError   = "flow_error"
)

var (
	matchRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "match_requests_total",
		Help:      "Match runs by outcome.",
	}, []string{"outcome"})

	matchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "match_duration_seconds",
		Help:      "Duration of match runs.",
		Buckets:   prometheus.DefBuckets,
	})

	scheduleRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "schedule_requests_total",
		Help:      "Propose runs by outcome.",
	}, []string{"outcome"})

	scheduleDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "schedule_duration_seconds",
		Help:      "Duration of propose runs.",
		Buckets:   prometheus.DefBuckets,
	})

	storeTasks = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "store_tasks",
		Help:      "Tasks currently held by the store.",
	})

	storePeople = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "store_people",
		Help:      "People currently held by the store.",
	})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method and status.",
	}, []string{"endpoint", "method", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request duration in milliseconds.",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
	}, []string{"endpoint", "method"})
)

// RecordMatch records one match run.
func RecordMatch(outcome string, seconds float64) {
	matchRequests.WithLabelValues(outcome).Inc()
	matchDuration.Observe(seconds)
}

// RecordSchedule records one propose run.
func RecordSchedule(outcome string, seconds float64) {
	scheduleRequests.WithLabelValues(outcome).Inc()
	scheduleDuration.Observe(seconds)
}

// UpdateStoreSizes publishes the store's entity counts.
func UpdateStoreSizes(tasks, people int) {
	storeTasks.Set(float64(tasks))
	storePeople.Set(float64(people))
}

// RecordHTTPRequest records one HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration records an HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method string, durationMs float64) {
	httpRequestDuration.WithLabelValues(endpoint, method).Observe(durationMs)
}

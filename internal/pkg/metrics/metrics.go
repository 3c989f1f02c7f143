package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Lecture operation results
const (
	ResultCreated  = "created"
	ResultUpdated  = "updated"
	ResultDeleted  = "deleted"
	ResultConflict = "conflict"
	ResultFailed   = "failed"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lecturehub_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lecturehub_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	lectureOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lecturehub_lecture_operations_total",
		Help: "Count of lecture lifecycle operations by operation and result",
	}, []string{"operation", "result"})

	availabilityChecks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lecturehub_availability_checks_total",
		Help: "Count of instructor availability checks by outcome",
	}, []string{"available"})

	cascadedLectures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lecturehub_cascaded_lecture_deletions_total",
		Help: "Lectures removed because their course was deleted",
	})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveLectureOperation counts a create/update/delete attempt with its result
func ObserveLectureOperation(operation, result string) {
	lectureOperations.WithLabelValues(operation, result).Inc()
}

// ObserveAvailabilityCheck counts an availability lookup
func ObserveAvailabilityCheck(available bool) {
	label := "false"
	if available {
		label = "true"
	}
	availabilityChecks.WithLabelValues(label).Inc()
}

// AddCascadedLectures counts lectures removed by a course deletion
func AddCascadedLectures(n int64) {
	if n > 0 {
		cascadedLectures.Add(float64(n))
	}
}

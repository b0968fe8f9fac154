package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "werkshift"

var (
	catalogResolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "catalog",
		Name:      "resolutions_total",
		Help:      "Catalog name resolutions broken down by kind and result.",
	}, []string{"kind", "result"})

	attachments = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "attachment",
		Name:      "attempts_total",
		Help:      "Junction row attachments broken down by kind and result.",
	}, []string{"kind", "result"})

	assignmentTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "assignment",
		Name:      "transitions_total",
		Help:      "InviteApply rows moved into each status.",
	}, []string{"status"})

	bulkDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "bulk",
		Name:      "duration_seconds",
		Help:      "Latency of bulk create-and-attach operations.",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"operation", "policy", "result"})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests broken down by method, route and status code.",
	}, []string{"method", "route", "code"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
)

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func RecordCatalogResolution(kind string, err error) {
	catalogResolutions.WithLabelValues(kind, result(err)).Inc()
}

func RecordAttachment(kind string, err error) {
	attachments.WithLabelValues(kind, result(err)).Inc()
}

func RecordTransition(status string, n int) {
	assignmentTransitions.WithLabelValues(status).Add(float64(n))
}

func ObserveBulk(operation, policy string, start time.Time, err error) {
	bulkDuration.WithLabelValues(operation, policy, result(err)).Observe(time.Since(start).Seconds())
}

func ObserveHTTP(method, route, code string, latency time.Duration) {
	httpRequests.WithLabelValues(method, route, code).Inc()
	httpLatency.WithLabelValues(method, route).Observe(latency.Seconds())
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

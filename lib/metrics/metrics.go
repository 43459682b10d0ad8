package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "collab",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "collab",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "route"},
	)

	positionsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "collab",
			Subsystem: "lifecycle",
			Name:      "positions_created_total",
			Help:      "Total number of created positions.",
		},
	)

	applicationsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "collab",
			Subsystem: "lifecycle",
			Name:      "applications_created_total",
			Help:      "Total number of submitted applications.",
		},
	)

	applicationsResolved = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "collab",
			Subsystem: "lifecycle",
			Name:      "applications_resolved_total",
			Help:      "Total number of applications leaving the pending state.",
		},
		[]string{"status"},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		positionsCreated,
		applicationsCreated,
		applicationsResolved,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func ObserveRequest(method, route string, status int, duration time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func PositionCreated() {
	positionsCreated.Inc()
}

func ApplicationCreated() {
	applicationsCreated.Inc()
}

// ApplicationResolved status: accepted, declined или revoked
func ApplicationResolved(status string) {
	applicationsResolved.WithLabelValues(status).Inc()
}

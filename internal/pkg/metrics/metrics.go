// Package metrics owns the Prometheus registry of the service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "parceltrack"

var (
	// Registry holds the application collectors plus the Go and process
	// collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "route"},
	)

	trackingCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tracking_cache",
			Name:      "lookups_total",
			Help:      "Tracking view cache lookups by result (hit, miss, error).",
		},
		[]string{"result"},
	)

	relayPublished = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "outbox",
			Name:      "published_total",
			Help:      "Outbox messages relayed to the broker.",
		},
	)

	relayRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "outbox",
			Name:      "relay_runs_total",
			Help:      "Outbox relay runs by outcome.",
		},
		[]string{"success"},
	)

	relayDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "outbox",
			Name:      "relay_duration_seconds",
			Help:      "Duration of outbox relay runs.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
		},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		trackingCache,
		relayPublished,
		relayRuns,
		relayDuration,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler exposes the registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// HTTPRequestStarted increments the in-flight gauge and returns the
// function that records the finished request.
func HTTPRequestStarted() func(method, route string, status int) {
	start := time.Now()
	httpInFlight.Inc()

	return func(method, route string, status int) {
		httpInFlight.Dec()
		httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// RecordTrackingCacheLookup counts one cache lookup by result (CacheHit,
// CacheMiss or CacheError).
func RecordTrackingCacheLookup(result string) {
	trackingCache.WithLabelValues(result).Inc()
}

// RecordRelayRun records one outbox relay run.
func RecordRelayRun(published int, err error, duration time.Duration) {
	relayRuns.WithLabelValues(strconv.FormatBool(err == nil)).Inc()
	relayDuration.Observe(duration.Seconds())
	if published > 0 {
		relayPublished.Add(float64(published))
	}
}

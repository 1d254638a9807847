package utils

import (
	"errors"
	"strconv"
	"sync"
	"time"

	"termcompass/services/apperr"

	"github.com/prometheus/client_golang/prometheus"
)

var histogramBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5}

var (
	requestTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "termcompass",
		Subsystem: "api",
		Name:      "http_requests_total",
		Help:      "Count of processed HTTP requests",
	}, []string{"method", "route", "status"})

	requestLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "termcompass",
		Subsystem: "api",
		Name:      "http_request_duration_seconds",
		Help:      "Latency distribution of HTTP handlers",
		Buckets:   histogramBuckets,
	}, []string{"method", "route", "status"})

	rateLimitHits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "termcompass",
		Subsystem: "api",
		Name:      "rate_limit_hits_total",
		Help:      "Number of rate-limited responses",
	}, []string{"route"})

	interactionEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "termcompass",
		Subsystem: "sessions",
		Name:      "events_total",
		Help:      "Events applied to interaction sessions by outcome",
	}, []string{"kind", "op", "outcome"})

	sessionsSwept = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "termcompass",
		Subsystem: "sessions",
		Name:      "swept_total",
		Help:      "Expired sessions reclaimed by the sweeper",
	})

	registerOnce sync.Once
)

// RegisterMetrics adds the collectors to the default prometheus registry.
func RegisterMetrics() {
	registerOnce.Do(func() {
		collectors := []prometheus.Collector{requestTotal, requestLatency, rateLimitHits, interactionEvents, sessionsSwept}
		for _, c := range collectors {
			if err := prometheus.Register(c); err != nil {
				var are prometheus.AlreadyRegisteredError
				if !errors.As(err, &are) {
					GetLogger().Sugar().Warnf("metrics: failed to register collector: %v", err)
				}
			}
		}
	})
}

func RecordRequest(method, route string, status int, d time.Duration) {
	labels := prometheus.Labels{"method": method, "route": route, "status": strconv.Itoa(status)}
	requestTotal.With(labels).Inc()
	requestLatency.With(labels).Observe(d.Seconds())
}

func RecordRateLimitHit(route string) {
	rateLimitHits.WithLabelValues(route).Inc()
}

// RecordEvent counts one session event. The outcome is "ok" or the error code.
func RecordEvent(kind, op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = apperr.CodeOf(err)
		if outcome == "" {
			outcome = "error"
		}
	}
	interactionEvents.WithLabelValues(kind, op, outcome).Inc()
}

func RecordSweep(n int) {
	sessionsSwept.Add(float64(n))
}

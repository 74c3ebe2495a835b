// Package metrics declares the Prometheus instruments for the evaluation
// pipeline. Instruments are package-level so they register exactly once.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	evaluationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devicegate_evaluations_total",
		Help: "Ban-status evaluations by resulting status",
	}, []string{"status"})

	checkerFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devicegate_checker_failures_total",
		Help: "Checker chain vetoes by failure reason",
	}, []string{"reason"})

	reputationLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devicegate_reputation_lookups_total",
		Help: "Reputation payload resolutions by source",
	}, []string{"source"})

	reputationLookupFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "devicegate_reputation_lookup_failures_total",
		Help: "Reputation provider transport failures (evaluation fails open)",
	})

	reputationLookupSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "devicegate_reputation_lookup_duration_seconds",
		Help:    "Latency of external reputation lookups",
		Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	})

	eventsDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "devicegate_integrity_events_dropped_total",
		Help: "Integrity events dropped because the outbox was full",
	})
)

// Evaluation records a completed evaluation with its resulting status.
func Evaluation(status string) {
	evaluationsTotal.WithLabelValues(status).Inc()
}

// CheckerFailure records a chain veto with its reason.
func CheckerFailure(reason string) {
	checkerFailuresTotal.WithLabelValues(reason).Inc()
}

// ReputationLookup records a payload resolution from the given source
// ("cache" or "network").
func ReputationLookup(source string) {
	reputationLookupsTotal.WithLabelValues(source).Inc()
}

// ReputationLookupFailure records a provider transport failure.
func ReputationLookupFailure() {
	reputationLookupFailures.Inc()
}

// ObserveReputationLookup records the latency of one network lookup.
func ObserveReputationLookup(d time.Duration) {
	reputationLookupSeconds.Observe(d.Seconds())
}

// EventDropped records an integrity event discarded under backpressure.
func EventDropped() {
	eventsDroppedTotal.Inc()
}

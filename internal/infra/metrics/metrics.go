// Package metrics holds the prometheus collectors of one controller kind.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ReconcileDurationBuckets are the histogram buckets, in seconds, of a reconciliation pass.
var ReconcileDurationBuckets = []float64{0.01, 0.1, 0.25, 0.5, 1, 5, 15, 60}

// Recorder counts handled events, failed passes and pass durations for one kind.
type Recorder struct {
	handledEvents     prometheus.Counter
	reconcileDuration prometheus.Histogram
	reconcileErrors   prometheus.Counter
}

// New registers the collectors of a kind on reg. The namespace is the kind's
// metrics prefix, e.g. journal_controller.
func New(reg prometheus.Registerer, namespace string) *Recorder {
	factory := promauto.With(reg)

	return &Recorder{
		handledEvents: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "handled_events",
			Help:      "Number of reconciliation passes started.",
		}),
		reconcileDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "reconcile_duration_seconds",
			Help:      "Duration of reconciliation passes in seconds.",
			Buckets:   ReconcileDurationBuckets,
		}),
		reconcileErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconcile_errors_total",
			Help:      "Number of reconciliation passes that returned an error.",
		}),
	}
}

// ObserveReconcile records a finished pass.
func (r *Recorder) ObserveReconcile(duration time.Duration, failed bool) {
	r.handledEvents.Inc()
	r.reconcileDuration.Observe(duration.Seconds())

	if failed {
		r.reconcileErrors.Inc()
	}
}

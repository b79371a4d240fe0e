package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the intake flow.
// Tracks terminal outcomes per subscription type and Submit latency.
type Metrics struct {
	Outcomes       *prometheus.CounterVec
	SubmitDuration prometheus.Histogram
}

// New creates the intake metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Outcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "waitlist_subscriptions_total",
			Help: "Submissions by terminal outcome and subscription type",
		}, []string{"outcome", "subscription_type"}), // outcome: accepted, duplicate, invalid, store_error
		SubmitDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "waitlist_submit_duration_seconds",
			Help:    "Duration of Submit including enrichment and the store write",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}
}

// IncrementOutcome records one terminal outcome.
func (m *Metrics) IncrementOutcome(outcome, subscriptionType string) {
	if m == nil {
		return
	}
	m.Outcomes.WithLabelValues(outcome, subscriptionType).Inc()
}

// ObserveSubmit records the duration of a Submit call.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveSubmit(start time.Time) {
	if m == nil {
		return
	}
	m.SubmitDuration.Observe(time.Since(start).Seconds())
}

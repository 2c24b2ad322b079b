package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Email delivery metrics.
var (
	EmailsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emails_total",
			Help:      "Recommendation emails by outcome",
		},
		[]string{"status"}, // "sent" / "failed" / "rejected"
	)

	EmailDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "email_send_duration_seconds",
			Help:      "SMTP send duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	BreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"name"},
	)

	BreakerTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_transitions_total",
			Help:      "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)
)

var registerDeliveryOnce sync.Once

// RegisterDeliveryMetrics registers email delivery metrics with the default registry. Safe to call twice.
func RegisterDeliveryMetrics() {
	registerDeliveryOnce.Do(func() {
		prometheus.MustRegister(EmailsTotal, EmailDuration, BreakerState, BreakerTransitionsTotal)
	})
}

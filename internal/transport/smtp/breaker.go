package smtp

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/metrics"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/usecase/delivery"
)

// BreakerSettings tunes the circuit breaker.
type BreakerSettings struct {
	// MaxFailures consecutive failures open the circuit.
	MaxFailures uint32
	// OpenTimeout is how long the circuit stays open before a trial send.
	OpenTimeout time.Duration
}

// Breaker guards a sender with a circuit breaker so an unreachable mail
// server fails fast instead of holding request goroutines for the dial timeout.
type Breaker struct {
	next   delivery.Sender
	cb     *gobreaker.CircuitBreaker[struct{}]
	name   string
	logger *zap.Logger
}

// NewBreaker wraps next. Zero settings mean 5 failures and 30 seconds.
func NewBreaker(next delivery.Sender, settings BreakerSettings, logger *zap.Logger) *Breaker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if settings.MaxFailures == 0 {
		settings.MaxFailures = 5
	}
	if settings.OpenTimeout <= 0 {
		settings.OpenTimeout = 30 * time.Second
	}

	const name = "smtp"
	b := &Breaker{next: next, name: name, logger: logger.With(zap.String("component", "smtp-breaker"))}
	metrics.BreakerState.WithLabelValues(name).Set(0)

	b.cb = gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= settings.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			b.logger.Warn("circuit breaker state changed",
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			metrics.BreakerState.WithLabelValues(name).Set(stateValue(to))
			metrics.BreakerTransitionsTotal.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})
	return b
}

// Send forwards to the wrapped sender unless the circuit is open.
// Every failure wraps domain.ErrDeliveryFailed.
func (b *Breaker) Send(ctx context.Context, msg delivery.Message) error {
	start := time.Now()
	_, err := b.cb.Execute(func() (struct{}, error) {
		return struct{}{}, b.next.Send(ctx, msg)
	})

	switch {
	case err == nil:
		metrics.EmailsTotal.WithLabelValues("sent").Inc()
		metrics.EmailDuration.Observe(time.Since(start).Seconds())
		return nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.EmailsTotal.WithLabelValues("rejected").Inc()
		return fmt.Errorf("%w: mail server unavailable: %w", domain.ErrDeliveryFailed, err)
	default:
		metrics.EmailsTotal.WithLabelValues("failed").Inc()
		metrics.EmailDuration.Observe(time.Since(start).Seconds())
		return fmt.Errorf("%w: %w", domain.ErrDeliveryFailed, err)
	}
}

// State returns the current breaker state.
func (b *Breaker) State() gobreaker.State { return b.cb.State() }

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

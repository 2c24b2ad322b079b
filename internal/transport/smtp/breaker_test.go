package smtp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/metrics"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/usecase/delivery"
)

type mockSender struct {
	calls int
	err   error
}

func (m *mockSender) Send(context.Context, delivery.Message) error {
	m.calls++
	return m.err
}

func TestBreaker_Success(t *testing.T) {
	next := &mockSender{}
	b := NewBreaker(next, BreakerSettings{}, nil)
	before := testutil.ToFloat64(metrics.EmailsTotal.WithLabelValues("sent"))

	if err := b.Send(context.Background(), message()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.calls != 1 {
		t.Errorf("calls = %d", next.calls)
	}
	if v := testutil.ToFloat64(metrics.EmailsTotal.WithLabelValues("sent")); v != before+1 {
		t.Errorf("emails sent = %v, want %v", v, before+1)
	}
}

func TestBreaker_OpensAfterFailures(t *testing.T) {
	next := &mockSender{err: errors.New("connection refused")}
	b := NewBreaker(next, BreakerSettings{MaxFailures: 2, OpenTimeout: time.Hour}, nil)

	for i := 0; i < 2; i++ {
		err := b.Send(context.Background(), message())
		if !errors.Is(err, domain.ErrDeliveryFailed) {
			t.Fatalf("attempt %d: expected ErrDeliveryFailed, got %v", i, err)
		}
	}
	if b.State() != gobreaker.StateOpen {
		t.Fatalf("state = %s, want open", b.State())
	}
	if v := testutil.ToFloat64(metrics.BreakerState.WithLabelValues("smtp")); v != 2 {
		t.Errorf("breaker gauge = %v", v)
	}

	err := b.Send(context.Background(), message())
	if !errors.Is(err, domain.ErrDeliveryFailed) || !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("expected open-state rejection, got %v", err)
	}
	if next.calls != 2 {
		t.Errorf("open circuit must not reach the sender, calls = %d", next.calls)
	}
}

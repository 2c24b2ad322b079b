package delivery

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/skin"
)

// --- Mocks ---

type mockSender struct {
	got []Message
	err error
}

func (m *mockSender) Send(_ context.Context, msg Message) error {
	m.got = append(m.got, msg)
	return m.err
}

func request() Request {
	return Request{
		Email:    "user@example.com",
		SkinType: "oily",
		Tone:     "3",
		Acne:     "High",
		Bundle: skin.Bundle{
			Makeup: []skin.Item{{Name: "Fit Me", Brand: "Maybelline", SkinType: skin.TypeNormal, Tone: "3", Price: 649}},
			General: skin.General{
				Cleanser: []skin.Item{{
					Name: "Acne <Foam>", SkinType: skin.TypeOily, Price: 12.5,
					ProductURL: "https://example.com/acne-foam",
				}},
			},
		},
	}
}

// --- Tests ---

func TestSend_Success(t *testing.T) {
	sender := &mockSender{}
	svc := New(sender, nil)

	if err := svc.Send(context.Background(), request()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.got) != 1 {
		t.Fatalf("expected 1 message, got %d", len(sender.got))
	}
	msg := sender.got[0]
	if msg.To != "user@example.com" || msg.Subject != Subject {
		t.Errorf("headers = %q / %q", msg.To, msg.Subject)
	}
	for _, want := range []string{"Skin type: oily", "Light to Medium", "Fit Me by Maybelline", "(649.00)", "https://example.com/acne-foam", "No products found"} {
		if !strings.Contains(msg.Text, want) {
			t.Errorf("text body missing %q:\n%s", want, msg.Text)
		}
	}
	if !strings.Contains(msg.HTML, "Acne &lt;Foam&gt;") {
		t.Error("html body must escape product names")
	}
	if !strings.Contains(msg.HTML, `href="https://example.com/acne-foam"`) {
		t.Error("html body missing product link")
	}
}

func TestSend_InvalidRequest(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"missing email", func(r *Request) { r.Email = "" }},
		{"malformed email", func(r *Request) { r.Email = "not-an-email" }},
		{"bad tone", func(r *Request) { r.Tone = "9" }},
		{"too many items", func(r *Request) {
			item := r.Bundle.Makeup[0]
			r.Bundle.Makeup = []skin.Item{item, item, item, item}
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sender := &mockSender{}
			req := request()
			tc.mutate(&req)

			err := New(sender, nil).Send(context.Background(), req)
			if !errors.Is(err, domain.ErrInvalidRequest) {
				t.Fatalf("expected ErrInvalidRequest, got %v", err)
			}
			if len(sender.got) != 0 {
				t.Error("sender must not be called")
			}
		})
	}
}

func TestSend_SenderError(t *testing.T) {
	svc := New(&mockSender{err: errors.New("connection refused")}, nil)
	err := svc.Send(context.Background(), request())
	if !errors.Is(err, domain.ErrDeliveryFailed) {
		t.Fatalf("expected ErrDeliveryFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("cause lost: %v", err)
	}
}

func TestSend_NoSender(t *testing.T) {
	svc := New(nil, nil)
	if svc.Enabled() {
		t.Error("Enabled() must be false without sender")
	}
	if err := svc.Send(context.Background(), request()); !errors.Is(err, domain.ErrDeliveryFailed) {
		t.Fatalf("expected ErrDeliveryFailed, got %v", err)
	}
}

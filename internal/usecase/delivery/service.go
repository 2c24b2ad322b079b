// Package delivery renders a recommendation bundle as an email and hands it to a sender.
package delivery

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"go.uber.org/zap"

	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/skin"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/validation"
)

// Subject is the subject line of every recommendation email.
const Subject = "Your Beauty Product Recommendations"

//go:embed templates/*
var templateFS embed.FS

var (
	textTmpl = texttemplate.Must(texttemplate.ParseFS(templateFS, "templates/recommendations.txt"))
	htmlTmpl = htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/recommendations.html"))
)

// Request asks for a bundle to be emailed.
type Request struct {
	Email    string      `json:"email" validate:"required,email,max=254"`
	SkinType string      `json:"skin_type" validate:"omitempty,max=32"`
	Tone     string      `json:"skin_tone" validate:"omitempty,oneof=1 2 3 4 5 6"`
	Acne     string      `json:"acne_level" validate:"omitempty,max=32"`
	Bundle   skin.Bundle `json:"recommendations"`
}

// view is the template input.
type view struct {
	SkinType        string
	Tone            string
	ToneDescription string
	Acne            string
	Makeup          []skin.Item
	Cleanser        []skin.Item
	Moisturizer     []skin.Item
	Serum           []skin.Item
}

// Service delivers recommendation emails.
type Service struct {
	sender Sender
	logger *zap.Logger
}

// New creates a Service. A nil sender makes every Send fail with ErrDeliveryFailed.
func New(sender Sender, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{sender: sender, logger: logger.With(zap.String("component", "delivery"))}
}

// Enabled reports whether a sender is configured.
func (s *Service) Enabled() bool { return s.sender != nil }

// Render validates the request and builds the message.
func (s *Service) Render(req Request) (Message, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := validation.Struct(&req); err != nil {
		return Message{}, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}

	v := view{
		SkinType:        req.SkinType,
		Tone:            req.Tone,
		ToneDescription: skin.Tone(req.Tone).Description(),
		Acne:            req.Acne,
		Makeup:          req.Bundle.Makeup,
		Cleanser:        req.Bundle.General.Cleanser,
		Moisturizer:     req.Bundle.General.Moisturizer,
		Serum:           req.Bundle.General.Serum,
	}

	var text, html bytes.Buffer
	if err := textTmpl.Execute(&text, v); err != nil {
		return Message{}, fmt.Errorf("render text body: %w", err)
	}
	if err := htmlTmpl.Execute(&html, v); err != nil {
		return Message{}, fmt.Errorf("render html body: %w", err)
	}

	return Message{To: req.Email, Subject: Subject, Text: text.String(), HTML: html.String()}, nil
}

// Send renders and delivers the bundle.
func (s *Service) Send(ctx context.Context, req Request) error {
	msg, err := s.Render(req)
	if err != nil {
		return err
	}
	if s.sender == nil {
		return fmt.Errorf("%w: no sender configured", domain.ErrDeliveryFailed)
	}

	if err := s.sender.Send(ctx, msg); err != nil {
		s.logger.Error("recommendation email failed", zap.Error(err))
		if errors.Is(err, domain.ErrDeliveryFailed) {
			return err
		}
		return fmt.Errorf("%w: %w", domain.ErrDeliveryFailed, err)
	}

	s.logger.Info("recommendation email sent",
		zap.Int("items", len(req.Bundle.Makeup)+len(req.Bundle.General.Cleanser)+
			len(req.Bundle.General.Moisturizer)+len(req.Bundle.General.Serum)),
	)
	return nil
}

package chi

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"go.uber.org/zap"

	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/skin"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/usecase/analysis"
	deliveryuc "github.com/Tejass087/Skin-Care-Reccomadation/internal/usecase/delivery"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/validation"
)

// AnalyzeRequest is the body of POST /skin/analyze.
type AnalyzeRequest struct {
	FaceData struct {
		SkinPixels []analysis.Pixel `json:"skin_pixels"`
	} `json:"face_data"`
}

// SkinAnalysis is a classification as returned to clients.
type SkinAnalysis struct {
	Type            string    `json:"type"`
	Tone            string    `json:"tone"`
	ToneDescription string    `json:"tone_description"`
	Acne            string    `json:"acne"`
	RawMetrics      *skin.Raw `json:"raw_metrics,omitempty"`
}

// AnalyzeResponse pairs the classification with the matched bundle.
type AnalyzeResponse struct {
	SkinAnalysis    SkinAnalysis `json:"skin_analysis"`
	Recommendations skin.Bundle  `json:"recommendations"`
}

// MatchRequest is the body of POST /skin/recommendations.
type MatchRequest struct {
	Type string `json:"type"`
	Tone string `json:"tone"`
	Acne string `json:"acne"`
}

// EmailResponse is the body of POST /recommendations/email.
type EmailResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// AnalyzeSkin handles POST /skin/analyze.
func (s *Server) AnalyzeSkin(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.FaceData.SkinPixels) == 0 {
		s.logger.Warn("no skin pixels in request")
		writeError(w, http.StatusBadRequest, CodeBadRequest, "No skin pixels detected")
		return
	}

	metrics, err := analysis.Analyze(req.FaceData.SkinPixels)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, AnalyzeResponse{
		SkinAnalysis:    analysisToResponse(&metrics),
		Recommendations: s.matcher.Match(metrics),
	})
}

// MatchSkin handles POST /skin/recommendations.
func (s *Server) MatchSkin(w http.ResponseWriter, r *http.Request) {
	var req MatchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	metrics, err := skin.NewMetrics(req.Type, req.Tone, req.Acne)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, s.matcher.Match(metrics))
}

// EmailRecommendations handles POST /recommendations/email. It accepts JSON
// or form fields with the bundle in recommendations_json.
func (s *Server) EmailRecommendations(w http.ResponseWriter, r *http.Request) {
	req, err := decodeEmailRequest(w, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, EmailResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if err := s.delivery.Send(r.Context(), req); err != nil {
		s.logger.Warn("email delivery failed", zap.Error(err))
		status, msg := emailFailure(err)
		writeJSON(w, status, EmailResponse{Error: msg})
		return
	}

	writeJSON(w, http.StatusOK, EmailResponse{Success: true})
}

func decodeEmailRequest(w http.ResponseWriter, r *http.Request) (deliveryuc.Request, error) {
	var req deliveryuc.Request
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		var err error
		if mediaType == "multipart/form-data" {
			err = r.ParseMultipartForm(maxBodyBytes)
		} else {
			err = r.ParseForm()
		}
		if err != nil {
			return req, err
		}
		req.Email = r.PostFormValue("email")
		req.SkinType = r.PostFormValue("skin_type")
		req.Tone = r.PostFormValue("skin_tone")
		req.Acne = r.PostFormValue("acne_level")
		if bundle := r.PostFormValue("recommendations_json"); bundle != "" {
			if err := json.Unmarshal([]byte(bundle), &req.Bundle); err != nil {
				return req, err
			}
		}
		return req, nil
	default:
		err := json.NewDecoder(r.Body).Decode(&req)
		return req, err
	}
}

// emailFailure maps a delivery error to a status and a client-safe message.
func emailFailure(err error) (int, string) {
	var ve *validation.Error
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Error()
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest, domain.ErrInvalidRequest.Error()
	case errors.Is(err, domain.ErrDeliveryFailed):
		return http.StatusBadGateway, domain.ErrDeliveryFailed.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func analysisToResponse(m *skin.Metrics) SkinAnalysis {
	return SkinAnalysis{
		Type:            string(m.Type()),
		Tone:            string(m.Tone()),
		ToneDescription: m.ToneDescription(),
		Acne:            string(m.Acne()),
		RawMetrics:      m.Raw(),
	}
}

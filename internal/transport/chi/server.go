// Package chi exposes the recommendation engines, the skin matcher and email
// delivery over HTTP.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain"
	deliveryuc "github.com/Tejass087/Skin-Care-Reccomadation/internal/usecase/delivery"
	healthuc "github.com/Tejass087/Skin-Care-Reccomadation/internal/usecase/health"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/usecase/matcher"
	recommenduc "github.com/Tejass087/Skin-Care-Reccomadation/internal/usecase/recommend"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/validation"
)

// maxBodyBytes bounds request bodies. Pixel payloads dominate.
const maxBodyBytes = 8 << 20

// ErrorCode is a stable, machine-readable error identifier.
type ErrorCode string

const (
	CodeBadRequest          ErrorCode = "bad_request"
	CodeValidationFailed    ErrorCode = "validation_failed"
	CodeUnauthorized        ErrorCode = "unauthorized"
	CodeCatalogNotFound     ErrorCode = "catalog_not_found"
	CodeNotFound            ErrorCode = "not_found"
	CodeCatalogNotPrepared  ErrorCode = "catalog_not_prepared"
	CodeSourceNotConfigured ErrorCode = "source_not_configured"
	CodeDeliveryFailed      ErrorCode = "delivery_failed"
	CodeRateLimited         ErrorCode = "rate_limited"
	CodeInternalError       ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response except email delivery.
type ErrorResponse struct {
	Code    ErrorCode               `json:"code"`
	Message string                  `json:"message"`
	Fields  []validation.FieldError `json:"fields,omitempty"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Options configures route registration.
type Options struct {
	// APIKeys protect reload and email routes. Empty disables auth.
	APIKeys []string
	// RateLimit bounds the skin and email routes per client IP. Zero requests disables it.
	RateLimit RateLimit
}

// RateLimit is a fixed-window request budget.
type RateLimit struct {
	Requests int
	Window   time.Duration
}

// Server serves the HTTP API.
type Server struct {
	recommend     *recommenduc.Service
	matcher       *matcher.Matcher
	delivery      *deliveryuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	recommend *recommenduc.Service,
	match *matcher.Matcher,
	delivery *deliveryuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		recommend: recommend,
		matcher:   match,
		delivery:  delivery,
		health:    health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		validationHandler,
		sentinelHandler(domain.ErrNotPrepared, http.StatusServiceUnavailable, CodeCatalogNotPrepared),
		sentinelHandler(domain.ErrUnknownCatalog, http.StatusNotFound, CodeCatalogNotFound),
		sentinelHandler(domain.ErrInvalidSkinMetrics, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrSourceNotConfigured, http.StatusConflict, CodeSourceNotConfigured),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeNotFound),
		sentinelHandler(domain.ErrDeliveryFailed, http.StatusBadGateway, CodeDeliveryFailed),
	}
	return s
}

// Register mounts every route on r. Global middleware stays with the caller.
func (s *Server) Register(r chi.Router, opts Options) {
	auth := BearerAuthMiddleware(opts.APIKeys)
	limit := RateLimitByIP(opts.RateLimit)

	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/catalogs", func(r chi.Router) {
		r.Get("/", s.ListCatalogs)
		r.Get("/{catalog}/recommendations", s.Recommend)
		r.With(auth).Post("/{catalog}/reload", s.ReloadCatalog)
	})

	r.Route("/skin", func(r chi.Router) {
		r.Use(limit)
		r.Post("/analyze", s.AnalyzeSkin)
		r.Post("/recommendations", s.MatchSkin)
	})

	r.With(auth, limit).Post("/recommendations/email", s.EmailRecommendations)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// decodeJSON reads a bounded JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	var npe *domain.NotPreparedError
	if errors.As(err, &npe) {
		return npe.Error()
	}
	sentinels := []error{
		domain.ErrUnknownCatalog,
		domain.ErrInvalidSkinMetrics,
		domain.ErrInvalidRequest,
		domain.ErrSourceNotConfigured,
		domain.ErrNotFound,
		domain.ErrDeliveryFailed,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// validationHandler reports each failed rule of a *validation.Error.
func validationHandler(w http.ResponseWriter, err error, _ string) bool {
	var ve *validation.Error
	if !errors.As(err, &ve) {
		return false
	}
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Code:    CodeValidationFailed,
		Message: ve.Error(),
		Fields:  ve.Fields(),
	})
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}

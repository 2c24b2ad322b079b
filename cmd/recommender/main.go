package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Tejass087/Skin-Care-Reccomadation/internal/app"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/config"
	logpkg "github.com/Tejass087/Skin-Care-Reccomadation/internal/logger"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/metrics"
	chiTransport "github.com/Tejass087/Skin-Care-Reccomadation/internal/transport/chi"
	healthuc "github.com/Tejass087/Skin-Care-Reccomadation/internal/usecase/health"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting beauty recommender",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Int("catalogs", len(cfg.Catalogs)),
		zap.Bool("database", cfg.Database.Enabled()),
		zap.Bool("email", cfg.SMTP.Enabled()),
	)

	ctx := context.Background()

	// Store is optional: only redis-backed catalogs need it.
	store, err := app.OpenStore(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	if store != nil {
		defer store.Close()
	}

	// Register metrics explicitly (no init())
	metrics.RegisterRecommendMetrics()
	metrics.RegisterDeliveryMetrics()

	recommendSvc, err := app.Recommender(cfg, store, metrics.Recorder{}, logger)
	if err != nil {
		logger.Fatal("Failed to build recommender", zap.Error(err))
	}
	// Catalogs that fail to load stay unprepared and report 503 until reloaded.
	if err := recommendSvc.ReloadAll(ctx); err != nil {
		logger.Error("Some catalogs failed to load", zap.Error(err))
	}

	matcherSvc, err := app.Matcher(cfg.Curated, logger)
	if err != nil {
		logger.Fatal("Failed to load curated table", zap.Error(err))
	}
	logger.Info("Curated table loaded", zap.Int("items", matcherSvc.Size()))

	deliverySvc, err := app.Delivery(cfg.SMTP, logger)
	if err != nil {
		logger.Fatal("Failed to configure email delivery", zap.Error(err))
	}

	// Pass nil interface (not typed nil pointer!) when no store is configured.
	var pinger healthuc.DBPinger
	if store != nil {
		pinger = store
	}
	healthSvc := healthuc.New(pinger, recommendSvc)

	// Create chi server
	server := chiTransport.NewServer(recommendSvc, matcherSvc, deliverySvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	server.Register(r, chiTransport.Options{
		APIKeys: cfg.Auth.APIKeys,
		RateLimit: chiTransport.RateLimit{
			Requests: cfg.RateLimit.Requests,
			Window:   time.Duration(cfg.RateLimit.WindowSec) * time.Second,
		},
	})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("route", chi.RouteContext(r.Context()).RoutePattern()),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}

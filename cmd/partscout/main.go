package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/partscout/partscout/internal/config"
	"github.com/partscout/partscout/internal/db"
	dbRedis "github.com/partscout/partscout/internal/db/redis"
	logpkg "github.com/partscout/partscout/internal/logger"
	"github.com/partscout/partscout/internal/metrics"
	"github.com/partscout/partscout/internal/repository/searchcache"
	chiTransport "github.com/partscout/partscout/internal/transport/chi"
	"github.com/partscout/partscout/internal/transport/geocode"
	openaiOracle "github.com/partscout/partscout/internal/transport/openai"
	"github.com/partscout/partscout/internal/transport/places"
	"github.com/partscout/partscout/internal/usecase/candidates"
	"github.com/partscout/partscout/internal/usecase/classify"
	"github.com/partscout/partscout/internal/usecase/fallback"
	healthuc "github.com/partscout/partscout/internal/usecase/health"
	"github.com/partscout/partscout/internal/usecase/pipeline"
	"github.com/partscout/partscout/internal/usecase/pricing"
	"github.com/partscout/partscout/internal/usecase/rank"
	"github.com/partscout/partscout/internal/usecase/verify"
	"github.com/partscout/partscout/internal/version"
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

	logger.Info("Starting partscout API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	// Result cache store — optional. No addrs means every search hits the
	// providers directly.
	var store db.Store
	if len(cfg.Database.Addrs) > 0 {
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Password: cfg.Database.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer store.Close()

		ctx := context.Background()
		if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Cache store not ready", zap.Error(err))
		}
		logger.Info("Connected to cache store")
	} else {
		logger.Info("Result cache disabled (no database addrs configured)")
	}

	// Register pipeline metrics explicitly (no init())
	metrics.RegisterPipelineMetrics()

	// Classification oracle — optional. Without an API key the pipeline runs
	// on the heuristic scorer alone.
	var oracle *openaiOracle.Oracle
	if cfg.Oracle.APIKey != "" {
		oracle = openaiOracle.NewOracle(&openaiOracle.Config{
			APIKey:  cfg.Oracle.APIKey,
			BaseURL: cfg.Oracle.BaseURL,
			Model:   cfg.Oracle.Model,
			Timeout: time.Duration(cfg.Oracle.TimeoutSec) * time.Second,
			Logger:  logger,
		})
		logger.Info("Classification oracle enabled", zap.String("model", cfg.Oracle.Model))
	} else {
		logger.Info("Classification oracle disabled (heuristic-only scoring)")
	}

	placesClient := places.NewClient(&places.Config{
		APIKey:  cfg.Places.APIKey,
		BaseURL: cfg.Places.BaseURL,
		Timeout: time.Duration(cfg.Places.TimeoutSec) * time.Second,
		Logger:  logger,
	})

	geocoder := geocode.NewClient(&geocode.Config{
		BaseURL: cfg.Geocoder.BaseURL,
		Country: cfg.Geocoder.Country,
		Timeout: time.Duration(cfg.Geocoder.TimeoutSec) * time.Second,
		Logger:  logger,
	})

	// Pass nil interface (not typed nil pointer!) if the oracle is not
	// configured. Go gotcha: (*Oracle)(nil) wrapped in an interface != nil.
	var classifyOracle classify.Oracle
	var verifyOracle verify.Oracle
	if oracle != nil {
		classifyOracle = oracle
		verifyOracle = oracle
	}

	weights := verify.DefaultWeights()
	weights.MinLikelihood = cfg.Search.MinLikelihood

	params := rank.Params{
		PenaltyPerMile: cfg.Search.PenaltyPerMile,
		TieBreakWindow: cfg.Search.TieBreakWindow,
	}

	// Create use case services
	classifySvc := classify.New(classifyOracle)
	candidatesSvc := candidates.New(placesClient)
	verifySvc := verify.New(verifyOracle, weights)
	pricingSvc := pricing.New()
	fallbackSvc := fallback.New()

	var cache pipeline.ResultCache
	if store != nil {
		cache = searchcache.New(
			store,
			time.Duration(cfg.Search.CacheTTLSec)*time.Second,
			metrics.SearchCacheTotal,
			logger,
		)
	}

	pipelineSvc := pipeline.New(
		classifySvc, candidatesSvc, verifySvc, pricingSvc, fallbackSvc, cache, params,
	)

	// Health service
	var dbPinger healthuc.DBPinger
	if store != nil {
		dbPinger = store
	}
	var oracleChecker healthuc.OracleChecker
	if oracle != nil {
		oracleChecker = oracle
	}
	healthSvc := healthuc.New(dbPinger, oracleChecker)

	// Create chi server
	server := chiTransport.NewServer(pipelineSvc, healthSvc, geocoder, logger).
		WithDefaultResultCap(cfg.Search.ResultCap)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Mount(r)

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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
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

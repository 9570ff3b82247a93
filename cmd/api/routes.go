package main

import (
	"context"
	"net/http"
	"time"

	"booksearch/internal/book"
	"booksearch/internal/config"
	"booksearch/internal/history"
	"booksearch/internal/httpx"
	"booksearch/internal/platform/openlibrary"
	"booksearch/internal/search"

	"go.uber.org/zap"
)

type readinessFunc func(ctx context.Context) error

const readyTimeout = 500 * time.Millisecond

// newHandler wires services and routes over repo. The returned func releases
// background resources held by the middleware.
func newHandler(cfg *config.Config, logger *zap.Logger, repo history.Repository, ready readinessFunc) (http.Handler, func()) {
	catalog := openlibrary.NewClient(openlibrary.Config{
		BaseURL:   cfg.OpenLibrary.BaseURL,
		Timeout:   cfg.OpenLibrary.Timeout(),
		UserAgent: cfg.OpenLibrary.UserAgent,
		RPS:       cfg.OpenLibrary.RPS,
	})
	lookupService := book.NewLookupService(catalog, cfg.OpenLibrary.MaxResults, logger)
	historyService := history.NewService(repo, history.UTCClock{}, logger)
	searchService := search.NewService(lookupService, historyService, logger)

	searchHandler := search.NewHTTPHandler(searchService)
	historyHandler := history.NewHTTPHandler(historyService)

	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()
		if err := ready(ctx); err != nil {
			logger.Warn("readiness check failed", zap.Error(err))
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.HandleFunc("POST /v1/search", searchHandler.Search)
	router.HandleFunc("GET /v1/search", searchHandler.SearchQuery)
	router.HandleFunc("GET /v1/history", historyHandler.List)
	router.HandleFunc("GET /v1/history/{id}", historyHandler.GetByID)

	limiter := httpx.NewRateLimitMiddleware(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst, cfg.Server.TrustProxyHeaders)

	handler := httpx.Chain(router,
		httpx.RecoveryMiddleware(logger),
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(logger),
		httpx.SecurityHeadersMiddleware(cfg.Server.EnableHSTS),
		httpx.CORSMiddleware(cfg.Server.CORSAllowedOrigins),
		limiter.Middleware,
		httpx.RequestSizeLimitMiddleware(cfg.Server.MaxBodyBytes),
	)
	return handler, limiter.Stop
}

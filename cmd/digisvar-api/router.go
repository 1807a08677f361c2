// Package main provides the API router setup.
package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/mediekroken/digisvar/cmd/digisvar-api/handlers"
	"github.com/mediekroken/digisvar/cmd/digisvar-api/middleware"
	"github.com/mediekroken/digisvar/internal/analytics"
	"github.com/mediekroken/digisvar/internal/assistant"
	"github.com/mediekroken/digisvar/internal/cache"
	"github.com/mediekroken/digisvar/internal/config"
	"github.com/mediekroken/digisvar/internal/observability"
)

// NewRouter creates the main API router with all routes configured.
func NewRouter(logger *observability.Logger, cfg *config.Config, a *assistant.Assistant, cacheClient cache.Client, recorder analytics.Recorder) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))
	r.Use(chimiddleware.Timeout(cfg.Server.ReadTimeout))

	// Health checks (unauthenticated)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy","service":"digisvar"}`))
	})

	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ready"}`))
	})

	chatHandler := handlers.NewChatHandler(logger, a, cacheClient, cfg.Cache.TTL, recorder)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(middleware.AuthConfig{
			Enabled: cfg.Auth.Enabled,
			APIKey:  cfg.Auth.APIKey,
		}))

		r.Post("/chat", chatHandler.Chat)
	})

	return r
}

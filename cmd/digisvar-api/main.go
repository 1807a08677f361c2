// Package main provides the digisvar API server entrypoint.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/mediekroken/digisvar/internal/analytics"
	"github.com/mediekroken/digisvar/internal/assistant"
	"github.com/mediekroken/digisvar/internal/cache"
	"github.com/mediekroken/digisvar/internal/config"
	"github.com/mediekroken/digisvar/internal/knowledge"
	"github.com/mediekroken/digisvar/internal/observability"
)

func main() {
	// .env is optional in every environment
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if len(os.Args) > 2 && os.Args[1] == "--config" {
		cfgPath = os.Args[2]
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(observability.LogConfig{
		Level:       cfg.Observability.LogLevel,
		Format:      cfg.Observability.LogFormat,
		ServiceName: cfg.Observability.ServiceName,
	})

	// Knowledge load failures are fatal: serving an empty knowledge base
	// silently is worse than not starting.
	kb, err := knowledge.Load(cfg.Knowledge.Path)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.Knowledge.Path).Msg("Failed to load knowledge base")
	}

	a, err := assistant.New(kb, assistant.Config{
		DebugLogging:    cfg.Assistant.DebugLogging,
		FallbackMessage: cfg.Assistant.FallbackMessage,
	}, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create assistant")
	}

	var cacheClient cache.Client
	if cfg.Cache.Driver == "redis" {
		cacheClient, err = cache.NewRedisClient(cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			PoolSize: cfg.Cache.Redis.PoolSize,
		})
		if err != nil {
			logger.Warn().Err(err).Msg("Redis unavailable, falling back to memory cache")
			cacheClient = cache.NewMemoryClient(cfg.Cache.MaxEntries)
		}
	} else {
		cacheClient = cache.NewMemoryClient(cfg.Cache.MaxEntries)
	}
	defer cacheClient.Close()

	var recorder analytics.Recorder = analytics.NopRecorder{}
	if store, err := analytics.Open(cfg.Analytics); err != nil {
		logger.Warn().Err(err).Msg("Analytics store unavailable, route events will be dropped")
	} else if store != nil {
		recorder = store
		defer store.Close()
	}

	logger.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Int("faq_entries", len(kb.FAQ)).
		Str("cache", cfg.Cache.Driver).
		Str("analytics", cfg.Analytics.Driver).
		Msg("Starting digisvar API")

	router := NewRouter(logger, cfg, a, cacheClient, recorder)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("HTTP server listening")
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Error().Err(err).Msg("Server error")
	case sig := <-shutdown:
		logger.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdown)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Graceful shutdown failed")
		if err := srv.Close(); err != nil {
			logger.Error().Err(err).Msg("Forced shutdown failed")
		}
	}

	logger.Info().Msg("Server stopped")
}

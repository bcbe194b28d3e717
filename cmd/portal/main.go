package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glcplatform/portal/internal/api"
	"github.com/glcplatform/portal/internal/core/ports"
	"github.com/glcplatform/portal/internal/infrastructure/backend"
	"github.com/glcplatform/portal/internal/infrastructure/config"
	memorydb "github.com/glcplatform/portal/internal/infrastructure/db/memory"
	mongodb "github.com/glcplatform/portal/internal/infrastructure/db/mongo"
	redisdb "github.com/glcplatform/portal/internal/infrastructure/db/redis"
	"github.com/glcplatform/portal/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.Session.Secret == "" {
		log.Fatal().Msg("SESSION_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gateway := backend.New(cfg.Backend.BaseURL, cfg.Backend.Timeout, logger.Component("backend"))
	drafts := newDraftStore(ctx, cfg)

	e, nav, err := api.NewRouter(cfg, gateway, drafts)
	if err != nil {
		log.Fatal().Err(err).Msg("router setup failed")
	}
	nav.Start(ctx)

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	log.Info().
		Str("port", cfg.Port).
		Str("backend", cfg.Backend.BaseURL).
		Str("drafts", cfg.Drafts.Store).
		Msg("portal starting")

	if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// newDraftStore picks the configured draft store. Drafts are a convenience,
// so an unreachable store downgrades to the in-memory one with a warning
// instead of refusing to start.
func newDraftStore(ctx context.Context, cfg *config.Config) ports.DraftStore {
	log := logger.Component("drafts")

	switch cfg.Drafts.Store {
	case "redis":
		client, err := redisdb.Connect(ctx, redisdb.Config{
			Addr: cfg.Drafts.Redis.Addr,
			DB:   cfg.Drafts.Redis.DB,
		})
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Drafts.Redis.Addr).
				Msg("redis unavailable, falling back to in-memory draft store")
			return memorydb.NewDraftStore()
		}
		log.Info().Str("addr", cfg.Drafts.Redis.Addr).Msg("using redis draft store")
		return redisdb.NewDraftStore(client)

	case "mongo":
		db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Drafts.Mongo.URI,
			Database: cfg.Drafts.Mongo.Database,
		})
		if err != nil {
			log.Warn().Err(err).
				Msg("mongo unavailable, falling back to in-memory draft store")
			return memorydb.NewDraftStore()
		}
		log.Info().Str("database", cfg.Drafts.Mongo.Database).Msg("using mongo draft store")
		return mongodb.NewDraftStore(db)

	default:
		log.Info().Msg("using in-memory draft store")
		return memorydb.NewDraftStore()
	}
}

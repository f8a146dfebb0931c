// Command tracker serves the accountability tracker HTTP API.
//
//	@title                      Accountability Tracker API
//	@version                    1.0
//	@BasePath                   /
//	@securityDefinitions.apikey BearerAuth
//	@in                         header
//	@name                       Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/kinshiplabs/tracker/internal/api"
	"github.com/kinshiplabs/tracker/internal/core/ports"
	"github.com/kinshiplabs/tracker/internal/core/service"
	"github.com/kinshiplabs/tracker/internal/infrastructure/ai"
	"github.com/kinshiplabs/tracker/internal/infrastructure/db/document"
	"github.com/kinshiplabs/tracker/internal/infrastructure/db/file"
	"github.com/kinshiplabs/tracker/internal/infrastructure/db/memory"
	"github.com/kinshiplabs/tracker/internal/infrastructure/db/mongo"
	"github.com/kinshiplabs/tracker/internal/infrastructure/db/redis"
	"github.com/kinshiplabs/tracker/internal/infrastructure/http/handlers"
	"github.com/kinshiplabs/tracker/internal/infrastructure/queue"
	"github.com/kinshiplabs/tracker/internal/pkg/config"
	"github.com/kinshiplabs/tracker/pkg/logger"
)

const insightCacheTTL = 24 * time.Hour

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "tracker",
	})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("tracker stopped")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cleanups []func()
	defer func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}()

	// --- Redis (store driver or insight cache) ---
	var rdb *goredis.Client
	if cfg.Store.Driver == "redis" || cfg.Insight.Cache == "redis" {
		client, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		rdb = client
		cleanups = append(cleanups, func() { _ = client.Close() })
		log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")
	}

	// --- State document store ---
	var store ports.DocumentStore
	switch cfg.Store.Driver {
	case "file":
		fs, err := file.NewDocumentStore(cfg.Store.FileDir, cfg.Store.Key)
		if err != nil {
			return err
		}
		store = fs
		log.Info().Str("path", fs.Path()).Msg("using file store")
	case "redis":
		store = redis.NewDocumentStore(rdb, cfg.Store.Key)
	case "mongo":
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		cleanups = append(cleanups, func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(shutdownCtx)
		})
		store = mongo.NewDocumentStore(db, cfg.Store.Key)
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")
	default:
		return fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	repoOpts := document.Options{Driver: cfg.Store.Driver, ResetOnCorrupt: cfg.Store.ResetOnCorrupt}
	if cfg.Store.SeedFile != "" {
		seed, err := document.LoadSeed(cfg.Store.SeedFile)
		if err != nil {
			return err
		}
		repoOpts.Seed = &seed
	}
	repo := document.NewRepository(store, repoOpts, logger.Component("store"))

	// --- Insights ---
	var cache ports.InsightCache = memory.NewInsightCache(insightCacheTTL)
	if cfg.Insight.Cache == "redis" {
		cache = redis.NewInsightCache(rdb, insightCacheTTL)
	}

	var gen ports.TextGenerator
	if cfg.Insight.APIKey != "" {
		client, err := ai.NewGeminiClient(cfg.Insight.APIKey, cfg.Insight.Model)
		if err != nil {
			return err
		}
		gen = client
		log.Info().Str("model", cfg.Insight.Model).Msg("text generation enabled")
	} else {
		log.Warn().Msg("GEMINI_API_KEY not set, insights will use fallback texts")
	}
	insights := service.NewInsightService(gen, cache, cfg.Insight.Timeout, logger.Component("insights"))

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.Insight.Workers, insights, logger.Component("dispatcher"))
	dispatcher.Start(workerCtx)
	cleanups = append(cleanups, func() {
		cancelWorkers()
		dispatcher.Wait()
	})

	// --- Core ---
	tracker, err := service.NewTrackerService(ctx, repo, logger.Component("tracker"),
		service.WithInspirationQueue(dispatcher))
	if err != nil {
		return err
	}
	secret := cfg.Session.Secret
	if secret == "" {
		secret = "dev-secret"
		log.Warn().Msg("SESSION_SECRET not set, using a development secret")
	}
	authService := service.NewAuthService(tracker, secret, cfg.Session.TTL)

	ready := map[string]handlers.Pinger{"store": store}
	if rdb != nil {
		ready["redis"] = handlers.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
	}

	e := api.NewRouter(api.Dependencies{
		Tracker:   tracker,
		Auth:      authService,
		Insights:  insights,
		JWTSecret: secret,
		TokenTTL:  cfg.Session.TTL,
		Ready:     ready,
		Log:       logger.Component("http"),
	})

	// --- Serve ---
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

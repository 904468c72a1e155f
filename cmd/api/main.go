package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"jobeditor/internal/adapter/notify"
	"jobeditor/internal/adapter/repo"
	"jobeditor/internal/draft"
	"jobeditor/internal/http/handlers"
	"jobeditor/internal/http/httpapi"
	"jobeditor/internal/infra"
	"jobeditor/internal/infra/geoip"
	"jobeditor/internal/middleware"
	"jobeditor/internal/save"
	"jobeditor/internal/session"
	"jobeditor/internal/settings"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	var rdb *redis.Client
	var notifier save.Notifier = notify.Nop{}
	if cfg.RedisURL != "" {
		rdb, err = infra.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect redis")
		}
		defer rdb.Close()
		notifier = notify.NewRedisNotifier(rdb, cfg.UpdatesChannel)
	}

	metrics := infra.NewMetrics()

	var backendClient redis.UniversalClient
	if rdb != nil {
		backendClient = rdb
	}
	backend, closeBackend, err := infra.OpenDraftBackend(cfg, backendClient)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open draft backend")
	}
	defer func() {
		if err := closeBackend(); err != nil {
			logger.Warn().Err(err).Msg("close draft backend")
		}
	}()
	store := draft.NewStore(backend,
		draft.WithLogger(logger.With().Str("component", "drafts").Logger()),
		draft.WithObserver(metrics.DraftOp),
	)

	defaults, err := settings.Load(cfg.PostingDefaultsFile, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load posting defaults")
	}
	if cfg.PostingDefaultsFile != "" {
		go func() {
			if err := defaults.Watch(ctx); err != nil {
				logger.Warn().Err(err).Msg("posting defaults watcher stopped")
			}
		}()
	}

	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	}
	defer resolver.Close()

	jobs := repo.NewJobRepository(infra.NewSQLRunner(dbpool, logger))
	persister := repo.NewBreakerPersister(jobs, repo.BreakerSettings{
		MaxFailures: cfg.BreakerMaxFailures,
		Timeout:     cfg.BreakerTimeout,
	}, logger)

	manager := session.NewManager(session.Config{
		Jobs:      jobs,
		Persister: persister,
		Auth:      middleware.RequestCredentials{},
		Store:     store,
		Defaults:  defaults.Current,
		Notifier:  notifier,
		Metrics:   metrics,
		Active:    metrics.SessionsActive(),
		Debounce:  cfg.DraftDebounce,
		IdleTTL:   cfg.SessionIdleTTL,
		Logger:    logger.With().Str("component", "sessions").Logger(),
	})
	sweeper := session.NewSweeper(manager, cfg.SessionSweepSpec, logger)
	if err := sweeper.Start(); err != nil {
		logger.Fatal().Err(err).Msg("failed to start session sweeper")
	}

	app := handlers.NewApp(manager, defaults, logger)
	app.Checks["database"] = dbpool.Ping
	app.Checks["persist_breaker"] = func(context.Context) error {
		if st := persister.State(); st == "open" {
			return errors.New("circuit " + st)
		}
		return nil
	}
	if rdb != nil {
		app.Checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	router := httpapi.NewRouter(app, httpapi.Options{
		JWTSecret:       cfg.JWTSecret,
		CORSOrigins:     cfg.CORSOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
		DefaultLocale:   "en",
		Country:         resolver.CountryCode,
		Observe:         metrics.ObserveRequest,
		Metrics:         metrics.Handler(),
		Log:             logger,
	})
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Str("addr", server.Addr()).Str("draft_backend", cfg.DraftBackend).Msg("API listening")
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	sweeper.Stop()
	manager.Shutdown()
	logger.Info().Msg("server stopped")
}

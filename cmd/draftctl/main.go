package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"jobeditor/internal/adapter/repo"
	"jobeditor/internal/cli"
	"jobeditor/internal/domain"
	"jobeditor/internal/draft"
	"jobeditor/internal/infra"
	"jobeditor/internal/settings"
)

func main() {
	_ = godotenv.Load()
	os.Exit(run())
}

func run() int {
	var closers []func() error
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i]()
		}
	}()

	env := func() (*cli.Env, error) {
		cfg, err := infra.LoadToolConfig()
		if err != nil {
			return nil, err
		}
		logger := infra.NewLogger(cfg.AppEnv)
		ctx := context.Background()

		var rdb redis.UniversalClient
		if cfg.DraftBackend == infra.DraftBackendRedis {
			c, err := infra.NewRedisClient(ctx, cfg.RedisURL)
			if err != nil {
				return nil, err
			}
			closers = append(closers, c.Close)
			rdb = c
		}
		backend, closeBackend, err := infra.OpenDraftBackend(cfg, rdb)
		if err != nil {
			return nil, err
		}
		closers = append(closers, closeBackend)

		defaults, err := settings.Load(cfg.PostingDefaultsFile, logger)
		if err != nil {
			return nil, err
		}

		return &cli.Env{
			Store:    draft.NewStore(backend, draft.WithLogger(logger)),
			Defaults: defaults.Current,
			Jobs: func(ctx context.Context) (domain.JobReader, error) {
				if cfg.DatabaseURL == "" {
					return nil, errors.New("DATABASE_URL is required for this command")
				}
				pool, err := infra.NewDBPool(ctx, cfg)
				if err != nil {
					return nil, err
				}
				closers = append(closers, func() error { pool.Close(); return nil })
				return repo.NewJobRepository(infra.NewSQLRunner(pool, logger)), nil
			},
		}, nil
	}

	if err := cli.NewRootCommand(env).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "draftctl:", err)
		return 1
	}
	return 0
}

package infra

import (
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"jobeditor/internal/draft"
)

// OpenDraftBackend builds the draft backend named by cfg.DraftBackend. The
// returned close func releases backend resources; it never closes rdb.
func OpenDraftBackend(cfg *Config, rdb redis.UniversalClient) (draft.Backend, func() error, error) {
	noop := func() error { return nil }
	switch cfg.DraftBackend {
	case DraftBackendMemory:
		return draft.NewMemoryBackend(), noop, nil
	case DraftBackendFile, "":
		b, err := draft.NewFileBackend(cfg.DraftDir)
		if err != nil {
			return nil, nil, fmt.Errorf("open file draft backend: %w", err)
		}
		return b, noop, nil
	case DraftBackendSQLite:
		b, err := draft.OpenSQLite(cfg.DraftSQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite draft backend: %w", err)
		}
		return b, b.Close, nil
	case DraftBackendRedis:
		if rdb == nil {
			return nil, nil, errors.New("redis draft backend needs a redis client")
		}
		return draft.NewRedisBackend(rdb, cfg.DraftRedisPrefix), noop, nil
	default:
		return nil, nil, fmt.Errorf("unknown draft backend %q", cfg.DraftBackend)
	}
}

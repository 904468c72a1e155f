//go:build integration

package draft

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run with: REDIS_URL=redis://localhost:6379/0 go test -tags integration ./internal/draft/
func TestRedisBackendContract(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	rdb := redis.NewClient(opts)
	t.Cleanup(func() { rdb.Close() })

	ctx := context.Background()
	require.NoError(t, rdb.Ping(ctx).Err())

	prefix := "drafttest:" + uuid.NewString() + ":"
	t.Cleanup(func() {
		iter := rdb.Scan(ctx, 0, prefix+"*", 100).Iterator()
		for iter.Next(ctx) {
			rdb.Del(ctx, iter.Val())
		}
	})

	// keys outside the draft namespace are not reported
	require.NoError(t, rdb.Set(ctx, prefix+"session-1", "x", 0).Err())

	b := NewRedisBackend(rdb, prefix)
	exerciseBackend(t, b)

	n, err := rdb.Exists(ctx, prefix+NewKeyFor("emp-1")).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "slots are stored under the prefix")
}

package notify

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"jobeditor/internal/domain"
)

func TestRedisNotifierDefaultsChannel(t *testing.T) {
	n := NewRedisNotifier(nil, "")
	assert.Equal(t, DefaultChannel, n.channel)
}

func TestRedisNotifierReportsPublishFailure(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	err := NewRedisNotifier(rdb, "updates").JobUpdated(context.Background(), domain.JobPosting{ID: "job-1"})
	assert.ErrorContains(t, err, "redis publish updates")
}

func TestNop(t *testing.T) {
	assert.NoError(t, Nop{}.JobUpdated(context.Background(), domain.JobPosting{}))
}

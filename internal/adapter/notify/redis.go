// Package notify announces saved postings to other services.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"jobeditor/internal/domain"
)

// DefaultChannel is the pub/sub channel listing caches subscribe to.
const DefaultChannel = "JOB_POSTING_UPDATED"

// Event is the published payload.
type Event struct {
	JobID      string    `json:"job_id"`
	EmployerID string    `json:"employer_id"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// RedisNotifier publishes an Event after each successful save.
type RedisNotifier struct {
	rdb     redis.UniversalClient
	channel string
}

// NewRedisNotifier creates a notifier publishing on channel.
func NewRedisNotifier(rdb redis.UniversalClient, channel string) *RedisNotifier {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisNotifier{rdb: rdb, channel: channel}
}

// JobUpdated publishes the event for job.
func (n *RedisNotifier) JobUpdated(ctx context.Context, job domain.JobPosting) error {
	payload, err := json.Marshal(Event{JobID: job.ID, EmployerID: job.EmployerID, UpdatedAt: job.UpdatedAt})
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	if err := n.rdb.Publish(ctx, n.channel, payload).Err(); err != nil {
		return fmt.Errorf("redis publish %s: %w", n.channel, err)
	}
	return nil
}

// Nop discards notifications.
type Nop struct{}

func (Nop) JobUpdated(context.Context, domain.JobPosting) error { return nil }

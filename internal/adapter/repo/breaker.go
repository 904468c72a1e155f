package repo

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"

	"jobeditor/internal/domain"
)

// BreakerSettings configures BreakerPersister.
type BreakerSettings struct {
	MaxFailures uint32
	Timeout     time.Duration
}

// BreakerPersister stops calling the wrapped persister after repeated backend
// failures until the breaker's timeout has passed. Rejections and auth errors
// are answers from a healthy backend and do not count as failures.
type BreakerPersister struct {
	next domain.JobPersister
	cb   *gobreaker.CircuitBreaker[*domain.JobPosting]
}

// NewBreakerPersister wraps next.
func NewBreakerPersister(next domain.JobPersister, s BreakerSettings, log zerolog.Logger) *BreakerPersister {
	if s.MaxFailures == 0 {
		s.MaxFailures = 5
	}
	settings := gobreaker.Settings{
		Name:    "job-persist",
		Timeout: s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.MaxFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || isClientError(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	}
	return &BreakerPersister{next: next, cb: gobreaker.NewCircuitBreaker[*domain.JobPosting](settings)}
}

func (b *BreakerPersister) ReplaceJob(ctx context.Context, cred domain.Credential, jobID string, p domain.JobPosting) (*domain.JobPosting, error) {
	return b.cb.Execute(func() (*domain.JobPosting, error) {
		return b.next.ReplaceJob(ctx, cred, jobID, p)
	})
}

// State returns the breaker state name.
func (b *BreakerPersister) State() string {
	return b.cb.State().String()
}

func isClientError(err error) bool {
	var rejected *domain.RejectedError
	return errors.As(err, &rejected) ||
		errors.Is(err, domain.ErrUnauthorized) ||
		errors.Is(err, domain.ErrForbidden) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, context.Canceled)
}

// Package draft persists in-progress posting forms so that an editing session
// survives reloads. Slots are keyed per job; the payload is the JSON form of
// posting.Draft.
package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"jobeditor/internal/posting"
)

const (
	// KeyPrefix is shared by every draft slot.
	KeyPrefix = "job-draft-"
	// NewKey is the slot for a posting that has not been created yet and has
	// no known owner.
	NewKey = KeyPrefix + "new"
)

// KeyFor returns the slot key for jobID, or NewKey when jobID is empty.
func KeyFor(jobID string) string {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return NewKey
	}
	return KeyPrefix + jobID
}

// NewKeyFor returns the new-posting slot of owner. Each employer gets its own
// slot so unsaved drafts are never shared between accounts.
func NewKeyFor(owner string) string {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return NewKey
	}
	return NewKey + "-" + owner
}

// IsNewKey reports whether key is a new-posting slot, with or without owner.
func IsNewKey(key string) bool {
	return key == NewKey || strings.HasPrefix(key, NewKey+"-")
}

// OwnerFromKey returns the owner encoded in a new-posting slot.
func OwnerFromKey(key string) string {
	if !strings.HasPrefix(key, NewKey+"-") {
		return ""
	}
	return strings.TrimPrefix(key, NewKey+"-")
}

// JobIDFromKey reverses KeyFor. New-posting slots yield "".
func JobIDFromKey(key string) (string, bool) {
	if !strings.HasPrefix(key, KeyPrefix) {
		return "", false
	}
	if IsNewKey(key) {
		return "", true
	}
	return strings.TrimPrefix(key, KeyPrefix), true
}

// StorageError reports a draft write that could not complete. It is never
// fatal to an editing session.
type StorageError struct {
	Key string
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("draft %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Observer is notified after every backend operation.
type Observer func(op string, err error)

// Store is the draft facade used by editing sessions.
type Store struct {
	backend  Backend
	log      zerolog.Logger
	observer Observer
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for degraded reads and failed writes.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) { s.log = log }
}

// WithObserver registers an operation observer, typically metrics.
func WithObserver(o Observer) Option {
	return func(s *Store) { s.observer = o }
}

// NewStore wraps backend.
func NewStore(backend Backend, opts ...Option) *Store {
	s := &Store{backend: backend, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the stored draft for key, or nil when the slot is empty or its
// content cannot be read.
func (s *Store) Load(ctx context.Context, key string) *posting.Draft {
	raw, err := s.backend.Get(ctx, key)
	s.observe("load", err)
	if errors.Is(err, ErrNoDraft) {
		return nil
	}
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("draft load failed")
		return nil
	}
	var d posting.Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("draft payload unreadable, ignoring")
		return nil
	}
	return &d
}

// Save replaces the slot with d. On failure the previous content is left as it
// was and a *StorageError is returned.
func (s *Store) Save(ctx context.Context, key string, d posting.Draft) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return s.fail("save", key, err)
	}
	err = s.backend.Put(ctx, key, payload)
	s.observe("save", err)
	if err != nil {
		return s.fail("save", key, err)
	}
	return nil
}

// Clear empties the slot. Clearing an empty slot succeeds.
func (s *Store) Clear(ctx context.Context, key string) error {
	err := s.backend.Delete(ctx, key)
	s.observe("clear", err)
	if err != nil && !errors.Is(err, ErrNoDraft) {
		return s.fail("clear", key, err)
	}
	return nil
}

// Raw returns the stored bytes for key as-is.
func (s *Store) Raw(ctx context.Context, key string) ([]byte, bool) {
	raw, err := s.backend.Get(ctx, key)
	if err != nil {
		return nil, false
	}
	return raw, true
}

// Keys lists every occupied slot.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	return s.backend.Keys(ctx)
}

func (s *Store) fail(op, key string, err error) error {
	s.log.Warn().Err(err).Str("key", key).Str("op", op).Msg("draft write failed")
	return &StorageError{Key: key, Op: op, Err: err}
}

func (s *Store) observe(op string, err error) {
	if s.observer == nil {
		return
	}
	if errors.Is(err, ErrNoDraft) {
		err = nil
	}
	s.observer(op, err)
}

package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"jobeditor/internal/changes"
	"jobeditor/internal/clock"
	"jobeditor/internal/domain"
	"jobeditor/internal/draft"
	"jobeditor/internal/posting"
	"jobeditor/internal/save"
)

// DefaultsSource returns the posting defaults currently in effect.
type DefaultsSource func() posting.Defaults

// Gauge tracks the number of open sessions.
type Gauge interface {
	Set(float64)
}

// Config wires a Manager.
type Config struct {
	Jobs      domain.JobReader
	Persister domain.JobPersister
	Auth      domain.SessionSource
	Store     *draft.Store
	Defaults  DefaultsSource
	Notifier  save.Notifier
	Metrics   save.Metrics
	Active    Gauge
	Clock     clock.Clock
	Debounce  time.Duration
	IdleTTL   time.Duration
	Logger    zerolog.Logger
}

// Manager owns the open sessions of the process.
type Manager struct {
	cfg Config

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates a Manager.
func NewManager(cfg Config) *Manager {
	if cfg.Clock == nil {
		cfg.Clock = clock.System
	}
	if cfg.Defaults == nil {
		cfg.Defaults = posting.StandardDefaults
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 30 * time.Minute
	}
	return &Manager{cfg: cfg, sessions: make(map[string]*Session)}
}

// Open starts editing an existing posting. The posting is read once; its form
// becomes the baseline. A stored draft, if any, replaces the working copy.
func (m *Manager) Open(ctx context.Context, owner, jobID string) (*Session, error) {
	job, err := m.cfg.Jobs.GetJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("load job %s: %w", jobID, err)
	}
	if owner != "" && job.EmployerID != "" && job.EmployerID != owner {
		return nil, domain.ErrForbidden
	}
	form := posting.Seed(job, m.cfg.Defaults())
	return m.start(ctx, owner, jobID, form), nil
}

// OpenNew starts a draft for a posting that does not exist yet. The draft slot
// is private to owner. The default currency follows the caller's country when
// one is configured for it.
func (m *Manager) OpenNew(ctx context.Context, owner, country string) *Session {
	defaults := m.cfg.Defaults().Normalize()
	defaults.Currency = defaults.CurrencyFor(country)
	return m.start(ctx, owner, "", posting.SeedDefaults(defaults))
}

func (m *Manager) start(ctx context.Context, owner, jobID string, form *posting.Form) *Session {
	key := draft.KeyFor(jobID)
	if jobID == "" {
		key = draft.NewKeyFor(owner)
	}
	s := &Session{
		id:         uuid.NewString(),
		jobID:      jobID,
		key:        key,
		owner:      owner,
		baseline:   form.Snapshot(),
		store:      m.cfg.Store,
		debounce:   draft.NewDebouncer(m.cfg.Clock, m.cfg.Debounce),
		clk:        m.cfg.Clock,
		log:        m.cfg.Logger.With().Str("job_id", jobID).Logger(),
		form:       form,
		lastActive: m.cfg.Clock.Now(),
	}
	s.coord = save.NewCoordinator(save.Config{
		JobID:     jobID,
		DraftKey:  key,
		Auth:      m.cfg.Auth,
		Persister: m.cfg.Persister,
		Drafts:    m.cfg.Store,
		Notifier:  m.cfg.Notifier,
		Metrics:   m.cfg.Metrics,
		Logger:    m.cfg.Logger,
	})

	if stored := m.cfg.Store.Load(ctx, key); stored != nil {
		form.Restore(*stored)
		s.restored = true
	}
	if err := m.cfg.Store.Save(ctx, key, form.Snapshot()); err != nil {
		s.warning = "Changes could not be stored on this device and may be lost on reload"
	}
	s.changes = changes.Detect(s.baseline, form.Snapshot())

	m.mu.Lock()
	m.sessions[s.id] = s
	n := len(m.sessions)
	m.mu.Unlock()
	m.report(n)

	s.log.Info().Str("session_id", s.id).Bool("restored", s.restored).Msg("edit session opened")
	return s
}

// Get returns an open session.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok || s.Closed() {
		return nil, ErrNotFound
	}
	return s, nil
}

// Close forgets a session. Unknown ids are ignored.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	n := len(m.sessions)
	m.mu.Unlock()
	m.report(n)
}

// Len returns the number of tracked sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep evicts sessions that are closed or idle longer than the TTL and
// returns how many were removed. Sessions with a save in flight are kept.
func (m *Manager) Sweep() int {
	cutoff := m.cfg.Clock.Now().Add(-m.cfg.IdleTTL)

	m.mu.RLock()
	var candidates []*Session
	for _, s := range m.sessions {
		if s.Closed() || s.idleSince().Before(cutoff) {
			candidates = append(candidates, s)
		}
	}
	m.mu.RUnlock()

	removed := 0
	for _, s := range candidates {
		if !s.Closed() && !s.evict() {
			continue
		}
		m.Close(s.id)
		removed++
	}
	if removed > 0 {
		m.cfg.Logger.Info().Int("removed", removed).Msg("idle edit sessions evicted")
	}
	return removed
}

// Shutdown flushes every pending draft write.
func (m *Manager) Shutdown() {
	m.mu.RLock()
	all := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		all = append(all, s)
	}
	m.mu.RUnlock()
	for _, s := range all {
		s.debounce.Flush()
	}
}

func (m *Manager) report(n int) {
	if m.cfg.Active != nil {
		m.cfg.Active.Set(float64(n))
	}
}

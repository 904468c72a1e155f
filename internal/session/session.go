// Package session ties the form model, draft store, change detection and save
// coordinator together into one editing session per open editor.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"jobeditor/internal/changes"
	"jobeditor/internal/clock"
	"jobeditor/internal/draft"
	"jobeditor/internal/posting"
	"jobeditor/internal/save"
)

var (
	// ErrNotFound is returned for unknown or expired session ids.
	ErrNotFound = errors.New("session: not found")
	// ErrLocked is returned when the form is edited while a save is being confirmed.
	ErrLocked = errors.New("session: form is locked while a save is pending")
	// ErrClosed is returned for sessions that were saved or discarded.
	ErrClosed = errors.New("session: closed")
)

// View is a point-in-time copy of a session for callers.
type View struct {
	ID           string            `json:"id"`
	JobID        string            `json:"jobId,omitempty"`
	Draft        posting.Draft     `json:"draft"`
	Changes      []string          `json:"changes"`
	State        save.State        `json:"state"`
	Confirmation save.Confirmation `json:"confirmation"`
	Restored     bool              `json:"restored"`
	DraftWarning string            `json:"draftWarning,omitempty"`
}

// Session is one open editor. All methods are safe for concurrent use.
type Session struct {
	id       string
	jobID    string
	key      string
	owner    string
	restored bool

	baseline posting.Draft
	store    *draft.Store
	debounce *draft.Debouncer
	coord    *save.Coordinator
	clk      clock.Clock
	log      zerolog.Logger

	mu         sync.Mutex
	form       *posting.Form
	changes    []string
	lastActive time.Time
	closed     bool
	confirming bool
	warning    string
}

func (s *Session) ID() string    { return s.id }
func (s *Session) JobID() string { return s.jobID }
func (s *Session) Key() string   { return s.key }

// Owner is the employer that opened the session.
func (s *Session) Owner() string { return s.owner }

// Baseline returns the frozen draft every change is measured against.
func (s *Session) Baseline() posting.Draft { return s.baseline.Clone() }

// View returns the current state of the session.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return View{
		ID:           s.id,
		JobID:        s.jobID,
		Draft:        s.form.Snapshot(),
		Changes:      append([]string{}, s.changes...),
		State:        s.coord.State(),
		Confirmation: s.coord.Prompt(),
		Restored:     s.restored,
		DraftWarning: s.warning,
	}
}

// Changes returns the current change list.
func (s *Session) Changes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.changes...)
}

// Set updates one scalar field.
func (s *Session) Set(field posting.Field, value any) ([]string, error) {
	return s.mutate(func(f *posting.Form) error { return f.Set(field, value) })
}

// AddItem adds an entry to the skills or requirements collection.
func (s *Session) AddItem(field posting.Field, item string) ([]string, error) {
	return s.mutate(func(f *posting.Form) error {
		_, err := f.AddToCollection(field, item)
		return err
	})
}

// RemoveItem removes an entry from the skills or requirements collection.
func (s *Session) RemoveItem(field posting.Field, item string) ([]string, error) {
	return s.mutate(func(f *posting.Form) error {
		_, err := f.RemoveFromCollection(field, item)
		return err
	})
}

// AddQuestion appends a screening question and returns its generated id.
func (s *Session) AddQuestion(q posting.Question) (string, []string, error) {
	var id string
	ch, err := s.mutate(func(f *posting.Form) error {
		id = f.AddQuestion(q)
		return nil
	})
	return id, ch, err
}

// UpdateQuestion replaces the question with the same id.
func (s *Session) UpdateQuestion(q posting.Question) ([]string, error) {
	return s.mutate(func(f *posting.Form) error { return f.UpdateQuestion(q) })
}

// RemoveQuestion deletes a screening question.
func (s *Session) RemoveQuestion(id string) ([]string, error) {
	return s.mutate(func(f *posting.Form) error {
		if !f.RemoveQuestion(id) {
			return posting.ErrQuestionNotFound
		}
		return nil
	})
}

// AddOption adds an answer option to a question.
func (s *Session) AddOption(questionID, option string) ([]string, error) {
	return s.mutate(func(f *posting.Form) error {
		_, err := f.AddOption(questionID, option)
		return err
	})
}

// RemoveOption removes an answer option from a question.
func (s *Session) RemoveOption(questionID, option string) ([]string, error) {
	return s.mutate(func(f *posting.Form) error {
		_, err := f.RemoveOption(questionID, option)
		return err
	})
}

// RequestSave opens the confirmation step with the current change list.
func (s *Session) RequestSave() (save.Confirmation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return save.Confirmation{}, ErrClosed
	}
	s.lastActive = s.clk.Now()
	if err := s.coord.RequestSave(s.form, s.changes); err != nil {
		return save.Confirmation{}, err
	}
	return s.coord.Prompt(), nil
}

// Cancel closes the confirmation step.
func (s *Session) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if s.confirming {
		return save.ErrSaveInFlight
	}
	s.lastActive = s.clk.Now()
	return s.coord.Cancel()
}

// Confirm writes any pending draft, then runs the save. The form is read
// without the session lock; edits, discards and evictions are refused until
// Confirm returns so neither the form nor the draft slot changes underneath.
func (s *Session) Confirm(ctx context.Context) (*save.Success, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	if s.confirming {
		s.mu.Unlock()
		return nil, save.ErrSaveInFlight
	}
	s.confirming = true
	s.lastActive = s.clk.Now()
	form := s.form
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.confirming = false
		s.mu.Unlock()
	}()

	s.debounce.Flush()
	res, err := s.coord.ConfirmAndSave(ctx, form)
	if err != nil {
		return nil, err
	}

	s.debounce.Stop()
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return res, nil
}

// Discard drops the stored draft and closes the session.
func (s *Session) Discard(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.busy() {
		s.mu.Unlock()
		return save.ErrSaveInFlight
	}
	s.closed = true
	s.mu.Unlock()

	s.debounce.Stop()
	return s.store.Clear(ctx, s.key)
}

// Closed reports whether the session was saved or discarded.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// idleSince returns the last activity time.
func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// evict writes any pending draft and stops further writes. The draft slot
// itself is kept so the user can resume later.
func (s *Session) evict() bool {
	s.mu.Lock()
	if s.busy() {
		s.mu.Unlock()
		return false
	}
	s.closed = true
	s.mu.Unlock()

	s.debounce.Flush()
	s.debounce.Stop()
	return true
}

// busy reports whether a save is being confirmed. Callers hold s.mu.
func (s *Session) busy() bool {
	return s.confirming || s.coord.State() == save.StateSaving
}

func (s *Session) mutate(fn func(*posting.Form) error) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	if s.confirming {
		return nil, save.ErrSaveInFlight
	}
	if st := s.coord.State(); st != save.StateIdle {
		if st == save.StateSaving {
			return nil, save.ErrSaveInFlight
		}
		return nil, ErrLocked
	}
	if err := fn(s.form); err != nil {
		return nil, err
	}
	s.lastActive = s.clk.Now()

	snap := s.form.Snapshot()
	s.debounce.Schedule(func() { s.persistDraft(snap) })
	s.changes = changes.Detect(s.baseline, snap)
	return append([]string{}, s.changes...), nil
}

// persistDraft runs on the debouncer. A failed write only produces a warning.
func (s *Session) persistDraft(d posting.Draft) {
	err := s.store.Save(context.Background(), s.key, d)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.warning = "Changes could not be stored on this device and may be lost on reload"
		return
	}
	s.warning = ""
}

package save

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"jobeditor/internal/domain"
	"jobeditor/internal/posting"
)

// DraftClearer empties the draft slot after a successful save.
type DraftClearer interface {
	Clear(ctx context.Context, key string) error
}

// Notifier is told about every posting that was written.
type Notifier interface {
	JobUpdated(ctx context.Context, job domain.JobPosting) error
}

// Metrics records save outcomes.
type Metrics interface {
	SaveOutcome(outcome string)
}

// Confirmation is what the caller renders in the confirmation prompt.
type Confirmation struct {
	Changes   []string `json:"changes"`
	IsLoading bool     `json:"isLoading"`
}

// Success describes a completed save.
type Success struct {
	Job     domain.JobPosting `json:"job"`
	Message string            `json:"message"`
	// Warning is set when the write succeeded but the draft slot could not be cleared.
	Warning string `json:"warning,omitempty"`
}

// Config wires a Coordinator to its collaborators. JobID is empty for a
// posting that does not exist yet.
type Config struct {
	JobID     string
	DraftKey  string
	Auth      domain.SessionSource
	Persister domain.JobPersister
	Drafts    DraftClearer
	Notifier  Notifier
	Metrics   Metrics
	Logger    zerolog.Logger
}

// Coordinator owns the save state machine of one editing session. It is safe
// for concurrent use; at most one persist call is in flight at a time.
type Coordinator struct {
	cfg Config

	mu      sync.Mutex
	state   State
	changes []string
}

// NewCoordinator returns a coordinator in StateIdle.
func NewCoordinator(cfg Config) *Coordinator {
	return &Coordinator{cfg: cfg, state: StateIdle}
}

// State returns the current state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Prompt returns the confirmation data for the current request.
func (c *Coordinator) Prompt() Confirmation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Confirmation{
		Changes:   append([]string{}, c.changes...),
		IsLoading: c.state == StateSaving,
	}
}

// RequestSave validates form and opens the confirmation step with changes.
// An empty change list is allowed. Validation failures leave the state Idle.
func (c *Coordinator) RequestSave(form *posting.Form, changes []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateSaving:
		return ErrSaveInFlight
	case StateAwaitingConfirmation:
		c.changes = append([]string{}, changes...)
		return nil
	case StateCleared:
		return ErrInvalidState
	}

	if errs := form.ValidateForSubmit(); len(errs) > 0 {
		return newError(KindValidation, MsgValidation, errs, nil)
	}
	c.changes = append([]string{}, changes...)
	c.transitionLocked(StateAwaitingConfirmation)
	return nil
}

// Cancel closes the confirmation step. Form and draft are not touched.
func (c *Coordinator) Cancel() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateSaving {
		return ErrSaveInFlight
	}
	if !IsTransitionAllowed(c.state, StateIdle) {
		return ErrInvalidState
	}
	c.transitionLocked(StateIdle)
	return nil
}

// ConfirmAndSave performs the save: credential, translation, last-line guard,
// one persist call, then draft clearing. Every failure returns a *Error and
// leaves the coordinator awaiting confirmation with the draft untouched.
func (c *Coordinator) ConfirmAndSave(ctx context.Context, form *posting.Form) (*Success, error) {
	c.mu.Lock()
	switch c.state {
	case StateSaving:
		c.mu.Unlock()
		return nil, ErrSaveInFlight
	case StateAwaitingConfirmation:
	default:
		c.mu.Unlock()
		return nil, ErrInvalidState
	}
	c.transitionLocked(StateSaving)
	c.mu.Unlock()

	job, err := c.persist(ctx, form)
	if err != nil {
		c.mu.Lock()
		c.transitionLocked(StateAwaitingConfirmation)
		c.mu.Unlock()
		c.record(string(KindOf(err)))
		return nil, err
	}

	res := &Success{Job: *job, Message: MsgUpdated}
	if c.cfg.JobID == "" {
		res.Message = MsgCreated
	}
	if c.cfg.Drafts != nil {
		if err := c.cfg.Drafts.Clear(ctx, c.cfg.DraftKey); err != nil {
			c.cfg.Logger.Warn().Err(err).Str("key", c.cfg.DraftKey).Msg("draft not cleared after save")
			res.Warning = newError(KindStorage, "Saved, but the local draft could not be removed", nil, err).Message
		}
	}

	c.mu.Lock()
	c.transitionLocked(StateCleared)
	c.mu.Unlock()
	c.record("success")

	if c.cfg.Notifier != nil {
		if err := c.cfg.Notifier.JobUpdated(ctx, *job); err != nil {
			c.cfg.Logger.Warn().Err(err).Str("job_id", job.ID).Msg("job update notification failed")
		}
	}
	return res, nil
}

func (c *Coordinator) persist(ctx context.Context, form *posting.Form) (*domain.JobPosting, error) {
	if c.cfg.Auth == nil {
		return nil, newError(KindAuth, MsgAuth, nil, domain.ErrUnauthorized)
	}
	cred, err := c.cfg.Auth.Credential(ctx)
	if err != nil {
		return nil, newError(KindAuth, MsgAuth, nil, err)
	}

	payload := form.ToPosting(c.cfg.JobID)
	payload.EmployerID = cred.EmployerID
	if errs := posting.RequiredForPersist(payload); len(errs) > 0 {
		return nil, newError(KindValidation, MsgValidation, errs, nil)
	}

	job, err := c.cfg.Persister.ReplaceJob(ctx, cred, c.cfg.JobID, payload)
	if err != nil {
		c.cfg.Logger.Error().Err(err).Str("job_id", c.cfg.JobID).Msg("persist job posting failed")
		return nil, persistFailure(err)
	}
	if job == nil {
		job = &payload
	}
	return job, nil
}

func (c *Coordinator) transitionLocked(to State) {
	if !IsTransitionAllowed(c.state, to) {
		c.cfg.Logger.Error().Str("from", string(c.state)).Str("to", string(to)).Msg("illegal save transition")
		return
	}
	c.state = to
}

func (c *Coordinator) record(outcome string) {
	if c.cfg.Metrics != nil && outcome != "" {
		c.cfg.Metrics.SaveOutcome(outcome)
	}
}


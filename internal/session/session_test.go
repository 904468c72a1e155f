package session

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobeditor/internal/changes"
	"jobeditor/internal/domain"
	"jobeditor/internal/draft"
	"jobeditor/internal/posting"
	"jobeditor/internal/save"
	"jobeditor/internal/testutil"
)

const draftKey = "job-draft-job-1"

func ptr[T any](v T) *T { return &v }

type fakeJobs struct {
	jobs     map[string]*domain.JobPosting
	replaced []domain.JobPosting
	err      error
}

func (f *fakeJobs) GetJob(ctx context.Context, id string) (*domain.JobPosting, error) {
	j, ok := f.jobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *j
	return &cp, nil
}

func (f *fakeJobs) ReplaceJob(ctx context.Context, cred domain.Credential, id string, job domain.JobPosting) (*domain.JobPosting, error) {
	if f.err != nil {
		return nil, f.err
	}
	job.ID = id
	f.replaced = append(f.replaced, job)
	return &job, nil
}

type auth struct{}

func (auth) Credential(context.Context) (domain.Credential, error) {
	return domain.Credential{Token: "t", EmployerID: "emp-1"}, nil
}

type gauge struct{ v float64 }

func (g *gauge) Set(v float64) { g.v = v }

func newManager(t *testing.T) (*Manager, *fakeJobs, *draft.Store, *testutil.ManualClock, *gauge) {
	t.Helper()
	jobs := &fakeJobs{jobs: map[string]*domain.JobPosting{
		"job-1": {
			ID:                "job-1",
			EmployerID:        "emp-1",
			Title:             "Backend Engineer",
			Location:          "Berlin",
			JobType:           domain.JobTypeFullTime,
			SalaryType:        domain.SalaryTypeRange,
			SalaryMin:         ptr(60000.0),
			SalaryMax:         ptr(80000.0),
			SalaryCurrency:    ptr("EUR"),
			Description:       "Build APIs.",
			Skills:            []string{"SQL", "Go"},
			Requirements:      []string{},
			ApplicationMethod: domain.ApplicationMethodPlatform,
		},
	}}
	store := draft.NewStore(draft.NewMemoryBackend())
	clk := testutil.NewManualClock(time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC))
	g := &gauge{}
	m := NewManager(Config{
		Jobs:      jobs,
		Persister: jobs,
		Auth:      auth{},
		Store:     store,
		Active:    g,
		Clock:     clk,
		Debounce:  500 * time.Millisecond,
		IdleTTL:   time.Minute,
	})
	return m, jobs, store, clk, g
}

func TestOpenWithoutDraftHasNoChanges(t *testing.T) {
	m, _, store, _, g := newManager(t)
	s, err := m.Open(context.Background(), "emp-1", "job-1")
	require.NoError(t, err)

	v := s.View()
	assert.Empty(t, v.Changes)
	assert.False(t, v.Restored)
	assert.Equal(t, save.StateIdle, v.State)
	assert.NotNil(t, store.Load(context.Background(), draftKey), "working copy is mirrored")
	assert.Equal(t, 1.0, g.v)
}

func TestOpenRestoresStoredDraft(t *testing.T) {
	m, _, store, _, _ := newManager(t)
	d := posting.Seed(&domain.JobPosting{
		Title: "Senior Backend Engineer", Location: "Berlin", JobType: domain.JobTypeFullTime,
		SalaryType: domain.SalaryTypeRange, SalaryMin: ptr(60000.0), SalaryMax: ptr(80000.0),
		SalaryCurrency: ptr("EUR"), Description: "Build APIs.", Skills: []string{"Go", "SQL"},
		ApplicationMethod: domain.ApplicationMethodPlatform,
	}, posting.StandardDefaults()).Snapshot()
	require.NoError(t, store.Save(context.Background(), draftKey, d))

	s, err := m.Open(context.Background(), "emp-1", "job-1")
	require.NoError(t, err)
	v := s.View()
	assert.True(t, v.Restored)
	assert.Equal(t, []string{`Title: "Backend Engineer" → "Senior Backend Engineer"`}, v.Changes)
	assert.Equal(t, "Backend Engineer", s.Baseline().Title)
}

func TestOpenErrors(t *testing.T) {
	m, _, _, _, _ := newManager(t)
	_, err := m.Open(context.Background(), "emp-1", "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = m.Open(context.Background(), "emp-2", "job-1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestMutationsDebounceDraftWrites(t *testing.T) {
	m, _, store, clk, _ := newManager(t)
	s, err := m.Open(context.Background(), "emp-1", "job-1")
	require.NoError(t, err)
	ctx := context.Background()

	for _, title := range []string{"S", "Se", "Senior Backend Engineer"} {
		_, err := s.Set(posting.FieldTitle, title)
		require.NoError(t, err)
		clk.Advance(100 * time.Millisecond)
	}
	assert.Equal(t, "Backend Engineer", store.Load(ctx, draftKey).Title, "no write before the quiet period")

	clk.Advance(500 * time.Millisecond)
	assert.Equal(t, "Senior Backend Engineer", store.Load(ctx, draftKey).Title)
}

func TestMutationsRecomputeChanges(t *testing.T) {
	m, _, _, _, _ := newManager(t)
	s, err := m.Open(context.Background(), "emp-1", "job-1")
	require.NoError(t, err)

	ch, err := s.AddItem(posting.FieldSkills, "Go")
	require.NoError(t, err)
	assert.Empty(t, ch, "duplicate skill is a no-op")

	ch, err = s.AddItem(posting.FieldSkills, "Rust")
	require.NoError(t, err)
	assert.Equal(t, []string{changes.SkillsChanged}, ch)

	ch, err = s.RemoveItem(posting.FieldSkills, "Rust")
	require.NoError(t, err)
	assert.Empty(t, ch)

	_, err = s.Set(posting.FieldSalaryType, posting.SalaryFixed)
	require.NoError(t, err)
	_, err = s.Set(posting.FieldSalaryAmount, 75000)
	require.NoError(t, err)
	assert.Equal(t, []string{changes.SalaryUpdated}, s.Changes())

	id, ch, err := s.AddQuestion(posting.Question{Text: "Can you relocate?", AnswerType: "yes_no"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Contains(t, ch, "Screening questions (1)")

	_, err = s.RemoveQuestion("nope")
	assert.ErrorIs(t, err, posting.ErrQuestionNotFound)

	_, err = s.Set("salary", 1)
	assert.Error(t, err)
}

func TestConfirmSavesAndClearsDraft(t *testing.T) {
	m, jobs, store, _, _ := newManager(t)
	s, err := m.Open(context.Background(), "emp-1", "job-1")
	require.NoError(t, err)
	ctx := context.Background()

	_, err = s.Set(posting.FieldTitle, "Senior Backend Engineer")
	require.NoError(t, err)

	conf, err := s.RequestSave()
	require.NoError(t, err)
	assert.Len(t, conf.Changes, 1)

	_, err = s.Set(posting.FieldTitle, "other")
	assert.ErrorIs(t, err, ErrLocked)

	res, err := s.Confirm(ctx)
	require.NoError(t, err)
	assert.Equal(t, save.MsgUpdated, res.Message)
	require.Len(t, jobs.replaced, 1)
	assert.Equal(t, "Senior Backend Engineer", jobs.replaced[0].Title)
	assert.Nil(t, store.Load(ctx, draftKey))

	_, err = m.Get(s.ID())
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Set(posting.FieldTitle, "x")
	assert.ErrorIs(t, err, ErrClosed)
}

func TestConfirmFailureFlushesAndKeepsDraft(t *testing.T) {
	m, jobs, store, _, _ := newManager(t)
	jobs.err = errors.New("boom")
	s, err := m.Open(context.Background(), "emp-1", "job-1")
	require.NoError(t, err)
	ctx := context.Background()

	_, err = s.Set(posting.FieldLocation, "Hamburg")
	require.NoError(t, err)
	_, err = s.RequestSave()
	require.NoError(t, err)

	_, err = s.Confirm(ctx)
	assert.Equal(t, save.KindPersist, save.KindOf(err))
	assert.Equal(t, save.StateAwaitingConfirmation, s.View().State)
	assert.Equal(t, "Hamburg", store.Load(ctx, draftKey).Location, "pending write flushed before save")

	require.NoError(t, s.Cancel())
	_, err = s.Set(posting.FieldLocation, "Munich")
	require.NoError(t, err)
}

// gatedBackend blocks the first Put after it is armed until released.
type gatedBackend struct {
	*draft.MemoryBackend
	armed   atomic.Bool
	entered chan struct{}
	release chan struct{}
}

func (g *gatedBackend) Put(ctx context.Context, key string, payload []byte) error {
	if g.armed.CompareAndSwap(true, false) {
		close(g.entered)
		<-g.release
	}
	return g.MemoryBackend.Put(ctx, key, payload)
}

func TestDiscardRefusedWhileConfirming(t *testing.T) {
	m, jobs, _, _, _ := newManager(t)
	gate := &gatedBackend{
		MemoryBackend: draft.NewMemoryBackend(),
		entered:       make(chan struct{}),
		release:       make(chan struct{}),
	}
	store := draft.NewStore(gate)
	m.cfg.Store = store
	jobs.err = errors.New("boom")
	ctx := context.Background()

	s, err := m.Open(ctx, "emp-1", "job-1")
	require.NoError(t, err)
	_, err = s.Set(posting.FieldLocation, "Hamburg")
	require.NoError(t, err)
	_, err = s.RequestSave()
	require.NoError(t, err)

	gate.armed.Store(true)
	done := make(chan error, 1)
	go func() {
		_, err := s.Confirm(ctx)
		done <- err
	}()
	<-gate.entered

	// the pending draft write is running and the coordinator has not started saving yet
	assert.Equal(t, save.StateAwaitingConfirmation, s.coord.State())
	assert.ErrorIs(t, s.Discard(ctx), save.ErrSaveInFlight)
	assert.ErrorIs(t, s.Cancel(), save.ErrSaveInFlight)
	_, err = s.Confirm(ctx)
	assert.ErrorIs(t, err, save.ErrSaveInFlight)
	assert.False(t, s.evict())

	close(gate.release)
	assert.Equal(t, save.KindPersist, save.KindOf(<-done))
	assert.False(t, s.Closed())
	assert.Equal(t, "Hamburg", store.Load(ctx, draftKey).Location)

	require.NoError(t, s.Cancel())
	require.NoError(t, s.Discard(ctx))
	assert.Nil(t, store.Load(ctx, draftKey))
}

func TestDiscardClearsDraft(t *testing.T) {
	m, _, store, clk, _ := newManager(t)
	s, err := m.Open(context.Background(), "emp-1", "job-1")
	require.NoError(t, err)
	ctx := context.Background()

	_, err = s.Set(posting.FieldTitle, "changed")
	require.NoError(t, err)
	require.NoError(t, s.Discard(ctx))
	clk.Advance(time.Second)

	assert.Nil(t, store.Load(ctx, draftKey))
	assert.ErrorIs(t, s.Discard(ctx), ErrClosed)
}

func TestOpenNewUsesCountryCurrency(t *testing.T) {
	m, _, store, _, _ := newManager(t)
	m.cfg.Defaults = func() posting.Defaults {
		d := posting.StandardDefaults()
		d.CountryCurrencies = map[string]string{"DE": "EUR"}
		return d
	}

	s := m.OpenNew(context.Background(), "emp-1", "de")
	assert.Equal(t, draft.NewKeyFor("emp-1"), s.Key())
	assert.Equal(t, "EUR", s.View().Draft.SalaryCurrency)
	assert.NotNil(t, store.Load(context.Background(), draft.NewKeyFor("emp-1")))
}

func TestOpenNewDraftsArePrivateToOwner(t *testing.T) {
	m, _, store, _, _ := newManager(t)
	ctx := context.Background()

	a := m.OpenNew(ctx, "emp-A", "")
	_, err := a.Set(posting.FieldTitle, "Secret Roadmap Lead at Acme")
	require.NoError(t, err)
	a.debounce.Flush()

	b := m.OpenNew(ctx, "emp-B", "")
	assert.NotEqual(t, a.Key(), b.Key())
	assert.False(t, b.View().Restored)
	assert.Empty(t, b.View().Draft.Title)

	_, err = b.Set(posting.FieldTitle, "Cook")
	require.NoError(t, err)
	b.debounce.Flush()
	require.NoError(t, b.Discard(ctx))

	assert.Equal(t, "Secret Roadmap Lead at Acme", store.Load(ctx, a.Key()).Title)
	assert.Nil(t, store.Load(ctx, b.Key()))

	again := m.OpenNew(ctx, "emp-A", "")
	assert.True(t, again.View().Restored)
	assert.Equal(t, "Secret Roadmap Lead at Acme", again.View().Draft.Title)
}

func TestSweepEvictsIdleSessionsAndKeepsDrafts(t *testing.T) {
	m, _, store, clk, g := newManager(t)
	ctx := context.Background()
	idle, err := m.Open(ctx, "emp-1", "job-1")
	require.NoError(t, err)
	_, err = idle.Set(posting.FieldTitle, "Pending title")
	require.NoError(t, err)

	clk.Advance(30 * time.Second)
	fresh := m.OpenNew(ctx, "emp-1", "")

	clk.Advance(45 * time.Second)
	_, err = fresh.Set(posting.FieldTitle, "keep me alive")
	require.NoError(t, err)

	assert.Equal(t, 1, m.Sweep())
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, 1.0, g.v)

	_, err = m.Get(idle.ID())
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = m.Get(fresh.ID())
	assert.NoError(t, err)

	assert.Equal(t, "Pending title", store.Load(ctx, draftKey).Title)
}

func TestSweeperRejectsBadSchedule(t *testing.T) {
	m, _, _, _, _ := newManager(t)
	sw := NewSweeper(m, "not a schedule", m.cfg.Logger)
	assert.Error(t, sw.Start())
}

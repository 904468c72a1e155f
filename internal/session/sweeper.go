package session

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// DefaultSweepSpec is the cron schedule of the idle-session sweep.
const DefaultSweepSpec = "@every 5m"

// Sweeper periodically evicts idle sessions.
type Sweeper struct {
	cron    *cron.Cron
	manager *Manager
	spec    string
	log     zerolog.Logger
}

// NewSweeper creates a Sweeper for manager. An empty spec uses DefaultSweepSpec.
func NewSweeper(manager *Manager, spec string, log zerolog.Logger) *Sweeper {
	if spec == "" {
		spec = DefaultSweepSpec
	}
	return &Sweeper{
		cron:    cron.New(),
		manager: manager,
		spec:    spec,
		log:     log,
	}
}

// Start registers the sweep and starts the scheduler.
func (s *Sweeper) Start() error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.manager.Sweep() }); err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}
	s.cron.Start()
	s.log.Info().Str("spec", s.spec).Msg("session sweeper started")
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info().Msg("session sweeper stopped")
}

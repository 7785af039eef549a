package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"

	"translatepal/internal/config"
)

// Scheduler handles periodic execution of housekeeping tasks
type Scheduler struct {
	config *config.Config
	cron   *cron.Cron
}

// NewScheduler creates a new scheduler instance
func NewScheduler(cfg *config.Config) *Scheduler {
	return &Scheduler{
		config: cfg,
		cron:   cron.New(),
	}
}

// RegisterFunc schedules fn on the given cron spec. Errors returned by fn
// are logged, not propagated.
func (s *Scheduler) RegisterFunc(spec, name string, fn func() error) error {
	_, err := s.cron.AddFunc(spec, func() {
		if err := fn(); err != nil {
			s.config.Logger.Errorf("Scheduled task %s failed: %v", name, err)
		}
	})
	if err != nil {
		return fmt.Errorf("error scheduling %s: %w", name, err)
	}
	return nil
}

// Start starts the cron runner
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the cron runner
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

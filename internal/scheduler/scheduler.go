package scheduler

import (
	"context"
	"fmt"
	"log"

	"TableScout/internal/checker"

	"github.com/robfig/cron/v3"
)

// Scheduler repeats the availability check on a cron spec (watch mode).
type Scheduler struct {
	Cron    *cron.Cron
	Checker *checker.Checker
	Dates   []string
	Ctx     context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, chk *checker.Checker, dates []string) *Scheduler {
	return &Scheduler{
		Cron:    cron.New(cron.WithSeconds()),
		Checker: chk,
		Dates:   dates,
		Ctx:     ctx,
	}
}

// Register registers the check task under the given cron spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.checkTask); err != nil {
		return fmt.Errorf("register check task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the check immediately (for RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.checkTask()
}

func (s *Scheduler) checkTask() {
	log.Println("[INFO] running availability check")
	matches := s.Checker.Run(s.Ctx, s.Dates)
	log.Printf("[INFO] check complete: %d/%d dates matched", len(matches), len(s.Dates))
}

// Copyright (c) 2026 Daniel Marchetti
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs periodic background jobs: cache warming and
// similar maintenance work that should not wait for a visitor.
package scheduler

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Scheduler wraps a cron instance with named jobs.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
}

// New creates an empty scheduler.
func New(logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		logger: logger,
	}
}

// AddJob registers fn to run on the given cron schedule. The job gets
// a fresh background context each run; a panic is contained to the run.
func (s *Scheduler) AddJob(schedule, name string, fn func(context.Context)) error {
	_, err := s.cron.AddFunc(schedule, func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("scheduled job panicked", "job", name, "panic", r)
			}
		}()
		s.logger.Debug("running scheduled job", "job", name)
		fn(context.Background())
	})
	return err
}

// Start begins executing registered jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop waits for any running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

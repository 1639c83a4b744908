// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs periodic maintenance tasks, currently a sweep that
// deletes generated offer documents past their retention period.
type Scheduler struct {
	cron      *cron.Cron
	logger    *slog.Logger
	offersDir string
	retention time.Duration
}

// New creates a new scheduler instance.
func New(logger *slog.Logger, offersDir string, retention time.Duration) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		logger:    logger,
		offersDir: offersDir,
		retention: retention,
	}
}

// Start begins the scheduler with an hourly offer retention sweep.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc("@hourly", func() {
		if err := s.SweepOffers(); err != nil {
			s.logger.Error("offer retention sweep failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// SweepOffers deletes offer PDFs older than the retention period.
// A zero retention disables the sweep.
func (s *Scheduler) SweepOffers() error {
	if s.retention <= 0 {
		return nil
	}

	entries, err := os.ReadDir(s.offersDir)
	if err != nil {
		return fmt.Errorf("reading offers directory: %w", err)
	}

	cutoff := time.Now().Add(-s.retention)
	removed := 0

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".pdf") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}

		path := filepath.Join(s.offersDir, entry.Name())
		if err := os.Remove(path); err != nil {
			s.logger.Error("removing expired offer", "path", path, "error", err)
			continue
		}
		removed++
	}

	if removed > 0 {
		s.logger.Info("offer retention sweep completed", "removed", removed)
	}
	return nil
}

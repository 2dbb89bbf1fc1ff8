// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs background maintenance jobs on cron schedules.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// JobFunc is the body of a scheduled job.
type JobFunc func(ctx context.Context) error

// job is a registered job and its cron entry.
type job struct {
	name        string
	description string
	schedule    string
	timeout     time.Duration
	fn          JobFunc
	entryID     cron.EntryID
	running     sync.Mutex
}

// JobInfo is the public view of a registered job.
type JobInfo struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Schedule    string    `json:"schedule"`
	LastRun     time.Time `json:"lastRun"`
	NextRun     time.Time `json:"nextRun"`
}

// ErrJobNotFound is returned for unknown job names.
var ErrJobNotFound = errors.New("job not found")

// parser accepts five-field expressions and descriptors like "@every 30m".
var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Scheduler handles scheduled maintenance such as flipbook warming and
// audit log cleanup.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
	mu     sync.RWMutex
	jobs   map[string]*job
}

// New creates a new scheduler instance.
func New(logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithParser(parser)),
		logger: logger,
		jobs:   make(map[string]*job),
	}
}

// Add registers a job. Each run gets a context bounded by timeout; a run
// still in progress when the next tick fires is skipped.
func (s *Scheduler) Add(name, description, schedule string, timeout time.Duration, fn JobFunc) error {
	if _, err := parser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", schedule, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[name]; ok {
		return fmt.Errorf("job %s already registered", name)
	}

	j := &job{name: name, description: description, schedule: schedule, timeout: timeout, fn: fn}
	entryID, err := s.cron.AddFunc(schedule, func() { s.run(j) })
	if err != nil {
		return fmt.Errorf("adding job %s: %w", name, err)
	}
	j.entryID = entryID
	s.jobs[name] = j

	s.logger.Debug("registered scheduled job", "name", name, "schedule", schedule)
	return nil
}

// run executes j once unless a previous run is still going.
func (s *Scheduler) run(j *job) {
	if !j.running.TryLock() {
		s.logger.Warn("skipping scheduled job, previous run still active", "name", j.name)
		return
	}
	defer j.running.Unlock()

	ctx := context.Background()
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	start := time.Now()
	if err := j.fn(ctx); err != nil {
		s.logger.Error("scheduled job failed", "name", j.name, "error", err, "duration", time.Since(start))
		return
	}
	s.logger.Debug("scheduled job finished", "name", j.name, "duration", time.Since(start))
}

// Start begins running registered jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// List returns all registered jobs sorted by name.
func (s *Scheduler) List() []JobInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]JobInfo, 0, len(s.jobs))
	for _, j := range s.jobs {
		entry := s.cron.Entry(j.entryID)
		result = append(result, JobInfo{
			Name:        j.name,
			Description: j.description,
			Schedule:    j.schedule,
			LastRun:     entry.Prev,
			NextRun:     entry.Next,
		})
	}

	sort.Slice(result, func(i, k int) bool { return result[i].Name < result[k].Name })
	return result
}

// TriggerNow runs a job immediately in the background.
func (s *Scheduler) TriggerNow(name string) error {
	s.mu.RLock()
	j, ok := s.jobs[name]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrJobNotFound, name)
	}

	s.logger.Info("manually triggering job", "name", name)
	go s.run(j)
	return nil
}

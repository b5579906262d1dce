// Package resync enqueues every known resource on a cron schedule, on top of
// the informer's periodic resync.
package resync

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

// Resyncer enqueues every resource it knows about.
type Resyncer interface {
	Name() string
	Resync(ctx context.Context)
}

// Scheduler triggers a resync of every target whenever the schedule fires.
type Scheduler struct {
	logger     *slog.Logger
	schedule   *Schedule
	targets    []Resyncer
	now        func() time.Time
	ready      chan struct{}
	doneCh     chan struct{}
	started    atomic.Bool
	inShutdown atomic.Bool
	runs       atomic.Int64
}

// NewScheduler creates a scheduler firing on schedule.
func NewScheduler(logger *slog.Logger, schedule *Schedule, targets ...Resyncer) *Scheduler {
	return &Scheduler{
		logger:   logger.With("component", "resync", "schedule", schedule.String()),
		schedule: schedule,
		targets:  targets,
		now:      time.Now,
		ready:    make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Name returns the name of the scheduler component
func (s *Scheduler) Name() string {
	return "resync-scheduler"
}

func (s *Scheduler) Start(ctx context.Context) error {
	if s.inShutdown.Load() {
		s.logger.InfoContext(ctx, "resync scheduler is shutting down, skipping start")

		return nil
	}

	if !s.started.CompareAndSwap(false, true) {
		return fmt.Errorf("start resync scheduler: %w", ErrAlreadyStarted)
	}

	go s.run(ctx)

	return nil
}

func (s *Scheduler) Ready() <-chan struct{} {
	return s.ready
}

// Runs returns how many times the schedule has fired.
func (s *Scheduler) Runs() int64 {
	return s.runs.Load()
}

func (s *Scheduler) Shutdown(ctx context.Context) error {
	if !s.inShutdown.CompareAndSwap(false, true) {
		s.logger.ErrorContext(ctx, "resync scheduler is already shutting down, skipping shutdown")

		return nil
	}

	defer func() {
		s.logger.InfoContext(ctx, "resync scheduler shut downed")
	}()

	if !s.started.Load() {
		return nil
	}

	select {
	case <-ctx.Done():
		return fmt.Errorf("shutdown context done before resync loop exited: %w", ctx.Err())
	case <-s.doneCh:
	}

	return nil
}

func (s *Scheduler) run(ctx context.Context) {
	defer close(s.doneCh)

	close(s.ready)

	for {
		next := s.schedule.Next(s.now())
		if next.IsZero() {
			s.logger.WarnContext(ctx, "schedule has no next occurrence, stopping")

			return
		}

		s.logger.DebugContext(ctx, "next resync scheduled", "at", next)

		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.InfoContext(ctx, "terminating resync loop")

			return
		case <-timer.C:
		}

		if s.inShutdown.Load() {
			return
		}

		s.fire(ctx)
	}
}

func (s *Scheduler) fire(ctx context.Context) {
	s.runs.Add(1)

	for _, target := range s.targets {
		target.Resync(ctx)
		s.logger.InfoContext(ctx, "resync triggered", "target", target.Name())
	}
}

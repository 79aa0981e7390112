// Package expiry schedules the delayed deletion of settings panels.
package expiry

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Scheduler runs at most one pending countdown at a time. Resetting while a
// countdown is pending cancels it and starts over, so the callback only ever
// fires after a full delay with no intervening resets.
type Scheduler struct {
	logger *zap.Logger
	mu     sync.Mutex
	cancel context.CancelFunc
	gen    uint64
}

// NewScheduler creates an idle scheduler.
func NewScheduler(logger *zap.Logger) *Scheduler {
	return &Scheduler{
		logger: logger.Named("expiry"),
	}
}

// Reset cancels any pending countdown and schedules fn to run after delay.
// fn receives a context that is cancelled if the countdown is superseded
// or stopped before it fires.
func (s *Scheduler) Reset(delay time.Duration, fn func(ctx context.Context)) {
	ctx, cancel := context.WithCancel(context.Background())

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = cancel
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	go func() {
		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			// Superseded or stopped, nothing to do
			return
		case <-timer.C:
		}

		fn(ctx)

		// Return to idle unless a newer countdown took over while fn ran
		s.mu.Lock()
		if s.gen == gen {
			s.cancel = nil
		}
		s.mu.Unlock()
		cancel()

		s.logger.Debug("Countdown fired", zap.Duration("delay", delay))
	}()
}

// Stop cancels any pending countdown without scheduling a new one.
// Safe to call when idle.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Pending reports whether a countdown is currently scheduled.
func (s *Scheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cancel != nil
}

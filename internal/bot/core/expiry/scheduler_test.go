package expiry_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/arthurlockman/FixMediaBot/internal/bot/core/expiry"
)

func TestResetFiresAfterDelay(t *testing.T) {
	t.Parallel()

	s := expiry.NewScheduler(zap.NewNop())

	fired := make(chan struct{})
	s.Reset(10*time.Millisecond, func(_ context.Context) {
		close(fired)
	})

	require.True(t, s.Pending())

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("countdown never fired")
	}

	// Scheduler returns to idle after firing
	require.Eventually(t, func() bool {
		return !s.Pending()
	}, time.Second, 5*time.Millisecond)
}

func TestResetSupersedesPendingCountdown(t *testing.T) {
	t.Parallel()

	s := expiry.NewScheduler(zap.NewNop())

	var firstFired atomic.Bool
	secondFired := make(chan struct{})

	s.Reset(50*time.Millisecond, func(_ context.Context) {
		firstFired.Store(true)
	})
	s.Reset(10*time.Millisecond, func(_ context.Context) {
		close(secondFired)
	})

	select {
	case <-secondFired:
	case <-time.After(time.Second):
		t.Fatal("second countdown never fired")
	}

	// Give the superseded countdown's original deadline time to pass
	time.Sleep(100 * time.Millisecond)
	assert.False(t, firstFired.Load(), "superseded countdown must not fire")
}

func TestResetCancelsRunningCallbackContext(t *testing.T) {
	t.Parallel()

	s := expiry.NewScheduler(zap.NewNop())

	started := make(chan struct{})
	cancelled := make(chan struct{})
	s.Reset(5*time.Millisecond, func(ctx context.Context) {
		close(started)
		<-ctx.Done()
		close(cancelled)
	})

	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("countdown never fired")
	}

	// A new countdown supersedes the one whose callback is still running,
	// aborting whatever that callback has in flight
	s.Reset(time.Hour, func(_ context.Context) {})

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("superseded callback context was never cancelled")
	}

	s.Stop()
}

func TestStopCancelsPendingCountdown(t *testing.T) {
	t.Parallel()

	s := expiry.NewScheduler(zap.NewNop())

	var fired atomic.Bool
	s.Reset(20*time.Millisecond, func(_ context.Context) {
		fired.Store(true)
	})

	s.Stop()
	assert.False(t, s.Pending())

	time.Sleep(60 * time.Millisecond)
	assert.False(t, fired.Load(), "stopped countdown must not fire")
}

func TestStopIsSafeWhenIdle(t *testing.T) {
	t.Parallel()

	s := expiry.NewScheduler(zap.NewNop())
	s.Stop()
	s.Stop()
	assert.False(t, s.Pending())
}

func TestAtMostOnePendingCountdown(t *testing.T) {
	t.Parallel()

	s := expiry.NewScheduler(zap.NewNop())

	var count atomic.Int32
	for i := 0; i < 10; i++ {
		s.Reset(15*time.Millisecond, func(_ context.Context) {
			count.Add(1)
		})
	}

	require.Eventually(t, func() bool {
		return count.Load() > 0
	}, time.Second, 5*time.Millisecond)

	// Only the final countdown survives the resets
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), count.Load())
}

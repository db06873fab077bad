package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScheduler_Start_RunsImmediatelyAndOnTicks verifies the job fires once
// right away and again on every tick.
func TestScheduler_Start_RunsImmediatelyAndOnTicks(t *testing.T) {
	var runs atomic.Int64

	s := New(10*time.Millisecond, func(ctx context.Context) {
		runs.Add(1)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go s.Start(ctx)
	defer s.Stop()

	require.Eventually(t, func() bool {
		return runs.Load() >= 3
	}, 2*time.Second, 5*time.Millisecond)
}

// TestScheduler_Stop_HaltsTicks verifies Stop ends the loop and no further
// runs happen.
func TestScheduler_Stop_HaltsTicks(t *testing.T) {
	var runs atomic.Int64

	s := New(10*time.Millisecond, func(ctx context.Context) {
		runs.Add(1)
	})

	done := make(chan struct{})
	go func() {
		s.Start(context.Background())
		close(done)
	}()

	require.Eventually(t, func() bool {
		return runs.Load() >= 1
	}, 2*time.Second, 5*time.Millisecond)

	s.Stop()
	s.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}

	after := runs.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, runs.Load())
}

// TestScheduler_ContextCancel_HaltsTicks verifies context cancellation ends
// the loop.
func TestScheduler_ContextCancel_HaltsTicks(t *testing.T) {
	var runs atomic.Int64

	s := New(10*time.Millisecond, func(ctx context.Context) {
		runs.Add(1)
	})

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return runs.Load() >= 1
	}, 2*time.Second, 5*time.Millisecond)

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop on context cancellation")
	}
}

package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

type countingRefreshable struct {
	calls atomic.Int64
	err   error
}

func (c *countingRefreshable) Refresh(ctx context.Context) error {
	c.calls.Add(1)
	return c.err
}

func TestRefresher_TicksUntilCancelled(t *testing.T) {
	t.Parallel()

	target := &countingRefreshable{}
	refresher := NewRefresher(target, 5*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- refresher.Start(ctx)
	}()

	deadline := time.After(2 * time.Second)
	for target.calls.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("Expected at least 3 refreshes, got %d", target.calls.Load())
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestRefresher_SurvivesRefreshErrors(t *testing.T) {
	t.Parallel()

	target := &countingRefreshable{err: errors.New("store down")}
	refresher := NewRefresher(target, 5*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- refresher.Start(ctx)
	}()

	// The loop keeps ticking despite failures
	deadline := time.After(2 * time.Second)
	for target.calls.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("Expected loop to keep running, got %d calls", target.calls.Load())
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	<-done
}

func TestNewRefresher_DefaultInterval(t *testing.T) {
	t.Parallel()

	refresher := NewRefresher(&countingRefreshable{}, 0, zap.NewNop())
	if refresher.interval != DefaultRefreshInterval {
		t.Errorf("Expected default interval, got %s", refresher.interval)
	}
}

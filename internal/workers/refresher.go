// Package workers contains the engine's background loops.
package workers

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Refreshable is the slice of the coordinator the refresher needs.
type Refreshable interface {
	Refresh(ctx context.Context) error
}

// DefaultRefreshInterval is how often today's tasks are re-read from the
// store when no interval is configured.
const DefaultRefreshInterval = 5 * time.Minute

// Refresher periodically re-reads the persisted task collection and applies
// any pending day rollover. It always goes back to the store so a stale
// in-memory snapshot can never resurrect deleted or completed tasks.
type Refresher struct {
	coordinator Refreshable
	interval    time.Duration
	logger      *zap.Logger
}

// NewRefresher creates a refresher. interval <= 0 uses the default.
func NewRefresher(coordinator Refreshable, interval time.Duration, logger *zap.Logger) *Refresher {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &Refresher{
		coordinator: coordinator,
		interval:    interval,
		logger:      logger,
	}
}

// Start runs the refresh loop until ctx is cancelled.
func (r *Refresher) Start(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("refresher_started", zap.Duration("interval", r.interval))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.coordinator.Refresh(ctx); err != nil {
				// Refresh failures are transient; the next tick retries.
				r.logger.Warn("refresh_failed", zap.Error(err))
			} else {
				r.logger.Debug("tasks_refreshed")
			}
		}
	}
}

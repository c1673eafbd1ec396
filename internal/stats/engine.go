// Package stats owns the gamification counters: lifetime points, derived
// level, daily XP, completion count and the login streak.
package stats

import (
	"context"
	"fmt"

	"github.com/dayboard/dayboard/internal/models"
	"github.com/dayboard/dayboard/internal/store"
	"go.uber.org/zap"
)

// Engine computes and persists UserStats. It keeps an in-memory mirror of the
// persisted blob; every mutation re-reads the store, applies the change and
// writes back, so the mirror can never outlive a failed write.
type Engine struct {
	store          store.Store
	logger         *zap.Logger
	pointsPerLevel int

	current *models.UserStats
}

// AwardResult reports the outcome of a point award.
type AwardResult struct {
	Stats     models.UserStats `json:"stats"`
	LeveledUp bool             `json:"leveled_up"`
	NewLevel  int              `json:"new_level"`
}

// NewEngine creates a stats engine. pointsPerLevel <= 0 falls back to the
// default of 500.
func NewEngine(s store.Store, logger *zap.Logger, pointsPerLevel int) *Engine {
	if pointsPerLevel <= 0 {
		pointsPerLevel = models.DefaultPointsPerLevel
	}
	return &Engine{
		store:          s,
		logger:         logger,
		pointsPerLevel: pointsPerLevel,
	}
}

// Load reads the persisted stats, initializing and persisting defaults if
// absent. Level is always recomputed from TotalPoints, overriding whatever
// was stored, so a drifted persisted value cannot survive a restart.
func (e *Engine) Load(ctx context.Context) (*models.UserStats, error) {
	var stats models.UserStats
	found, err := e.store.Get(ctx, store.KeyUserStats, &stats)
	if err != nil {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}

	if !found {
		stats = models.UserStats{Level: 1}
		if err := e.store.Set(ctx, store.KeyUserStats, &stats); err != nil {
			return nil, fmt.Errorf("failed to persist initial stats: %w", err)
		}
		e.logger.Info("stats_initialized")
	}

	stats.Level = models.LevelForPoints(stats.TotalPoints, e.pointsPerLevel)

	e.current = &stats
	return e.snapshot(), nil
}

// Current returns the loaded stats, or nil before Load.
func (e *Engine) Current() *models.UserStats {
	return e.snapshot()
}

// RecordLogin applies streak arithmetic for an activity check on the given
// calendar day:
//   - first ever login: streak = 1
//   - same day as the last activity: no change
//   - exactly the next day: streak + 1
//   - anything else (gap, or clock moved backwards): streak resets to 1
//
// LastActiveDate always becomes today. Idempotent within a day.
func (e *Engine) RecordLogin(ctx context.Context, today models.Date) (*models.UserStats, error) {
	stats, err := e.reload(ctx)
	if err != nil {
		return nil, err
	}

	last := stats.LastActiveDate
	switch {
	case last == today:
		// Re-entry on the same day; nothing to do.
		e.current = stats
		return e.snapshot(), nil
	case last.IsZero():
		stats.StreakDays = 1
	case last.AddDays(1) == today:
		stats.StreakDays++
	default:
		stats.StreakDays = 1
	}
	stats.LastActiveDate = today

	if err := e.persist(ctx, stats); err != nil {
		return nil, err
	}

	e.logger.Info("login_recorded",
		zap.String("date", today.String()),
		zap.Int("streak_days", stats.StreakDays),
	)
	return e.snapshot(), nil
}

// AwardPoints adds a non-negative point amount to TotalPoints and XPToday,
// recomputes the level and reports whether a level boundary was crossed.
// The caller owns any level-up presentation.
func (e *Engine) AwardPoints(ctx context.Context, points int) (*AwardResult, error) {
	if points < 0 {
		return nil, models.NewValidationError("points", "must be non-negative")
	}

	stats, err := e.reload(ctx)
	if err != nil {
		return nil, err
	}

	previousLevel := models.LevelForPoints(stats.TotalPoints, e.pointsPerLevel)
	stats.TotalPoints += points
	stats.XPToday += points
	stats.Level = models.LevelForPoints(stats.TotalPoints, e.pointsPerLevel)

	if err := e.persist(ctx, stats); err != nil {
		return nil, err
	}

	result := &AwardResult{
		Stats:     *stats,
		LeveledUp: stats.Level > previousLevel,
		NewLevel:  stats.Level,
	}
	if result.LeveledUp {
		e.logger.Info("level_up",
			zap.Int("new_level", stats.Level),
			zap.Int("total_points", stats.TotalPoints),
		)
	}
	return result, nil
}

// IncrementCompleted bumps the lifetime completion counter.
func (e *Engine) IncrementCompleted(ctx context.Context) (*models.UserStats, error) {
	stats, err := e.reload(ctx)
	if err != nil {
		return nil, err
	}

	stats.TasksCompleted++

	if err := e.persist(ctx, stats); err != nil {
		return nil, err
	}
	return e.snapshot(), nil
}

// ResetDailyXP zeroes the daily XP counter. The engine never calls this on
// its own: the coordinator detects day rollover and invokes it exactly once
// per calendar day. Left uncalled, XPToday keeps accumulating across days.
func (e *Engine) ResetDailyXP(ctx context.Context, today models.Date) error {
	stats, err := e.reload(ctx)
	if err != nil {
		return err
	}

	stats.XPToday = 0

	if err := e.persist(ctx, stats); err != nil {
		return err
	}

	e.logger.Info("daily_xp_reset", zap.String("date", today.String()))
	return nil
}

// reload fetches the persisted stats so mutations never build on a stale
// mirror. Missing stats fall back to first-load defaults.
func (e *Engine) reload(ctx context.Context) (*models.UserStats, error) {
	var stats models.UserStats
	found, err := e.store.Get(ctx, store.KeyUserStats, &stats)
	if err != nil {
		return nil, fmt.Errorf("failed to reload stats: %w", err)
	}
	if !found {
		stats = models.UserStats{Level: 1}
	}
	stats.Level = models.LevelForPoints(stats.TotalPoints, e.pointsPerLevel)
	return &stats, nil
}

func (e *Engine) persist(ctx context.Context, stats *models.UserStats) error {
	if err := e.store.Set(ctx, store.KeyUserStats, stats); err != nil {
		return fmt.Errorf("failed to persist stats: %w", err)
	}
	e.current = stats
	return nil
}

func (e *Engine) snapshot() *models.UserStats {
	if e.current == nil {
		return nil
	}
	copied := *e.current
	return &copied
}

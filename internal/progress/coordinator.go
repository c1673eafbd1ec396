// Package progress orchestrates the stats engine, task store and suggestion
// engine behind a single serialized entry point, and owns the session's
// ephemeral suggestion list.
package progress

import (
	"context"
	"fmt"
	"sync"

	"github.com/dayboard/dayboard/internal/clock"
	"github.com/dayboard/dayboard/internal/models"
	"github.com/dayboard/dayboard/internal/stats"
	"github.com/dayboard/dayboard/internal/store"
	"github.com/dayboard/dayboard/internal/suggest"
	"github.com/dayboard/dayboard/internal/tasks"
	"github.com/dayboard/dayboard/internal/templates"
	"go.uber.org/zap"
)

// DefaultPointsPerTask is the flat award for completing any task. Category
// multipliers are a possible extension, deliberately not implemented.
const DefaultPointsPerTask = 10

// ReadModel is the snapshot returned to the presentation layer.
type ReadModel struct {
	Stats       models.UserStats                         `json:"stats"`
	TodaysTasks []models.Task                            `json:"todays_tasks"`
	Suggestions []models.Suggestion                      `json:"suggestions"`
	Templates   map[models.Category][]templates.Template `json:"templates,omitempty"`
}

// CompleteResult is the combined outcome of a task completion.
type CompleteResult struct {
	Task          models.Task      `json:"task"`
	PointsAwarded int              `json:"points_awarded"`
	LeveledUp     bool             `json:"leveled_up"`
	NewLevel      int              `json:"new_level"`
	Stats         models.UserStats `json:"stats"`
}

// Options tunes the coordinator.
type Options struct {
	PointsPerTask  int
	MaxSuggestions int
}

// Coordinator serializes every engine operation behind one mutex, giving the
// run-to-completion semantics the engines assume: no operation observes
// another mid-mutation, including the periodic refresh.
type Coordinator struct {
	mu sync.Mutex

	stats     *stats.Engine
	tasks     *tasks.Store
	suggester *suggest.Engine
	source    templates.Source
	store     store.Store
	clock     clock.Clock
	logger    *zap.Logger

	pointsPerTask  int
	maxSuggestions int

	suggestions []models.Suggestion
}

// NewCoordinator wires the engines together. source may be nil when no
// template endpoint is configured.
func NewCoordinator(
	statsEngine *stats.Engine,
	taskStore *tasks.Store,
	suggester *suggest.Engine,
	source templates.Source,
	st store.Store,
	clk clock.Clock,
	logger *zap.Logger,
	opts Options,
) *Coordinator {
	if opts.PointsPerTask <= 0 {
		opts.PointsPerTask = DefaultPointsPerTask
	}
	if opts.MaxSuggestions <= 0 {
		opts.MaxSuggestions = suggest.DefaultMaxSuggestions
	}
	return &Coordinator{
		stats:          statsEngine,
		tasks:          taskStore,
		suggester:      suggester,
		source:         source,
		store:          st,
		clock:          clk,
		logger:         logger,
		pointsPerTask:  opts.PointsPerTask,
		maxSuggestions: opts.MaxSuggestions,
	}
}

// Initialize loads persisted state, records login activity, applies the
// day-rollover XP reset, regenerates the suggestion list and returns the
// full read model. Called once per session by the presentation layer.
func (c *Coordinator) Initialize(ctx context.Context) (*ReadModel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	today := c.clock.Today()

	if _, err := c.stats.Load(ctx); err != nil {
		return nil, err
	}
	if _, err := c.stats.RecordLogin(ctx, today); err != nil {
		return nil, err
	}
	if err := c.rolloverDailyXP(ctx, today); err != nil {
		return nil, err
	}

	if err := c.tasks.Refresh(ctx); err != nil {
		return nil, err
	}
	todays, err := c.tasks.ListForDay(ctx, today)
	if err != nil {
		return nil, err
	}

	all, err := c.tasks.All(ctx)
	if err != nil {
		return nil, err
	}
	c.suggestions = c.suggester.Generate(today, all, c.maxSuggestions)

	model := &ReadModel{
		Stats:       *c.stats.Current(),
		TodaysTasks: todays,
		Suggestions: c.suggestionSnapshot(),
		Templates:   c.fetchTemplates(ctx),
	}

	c.logger.Info("dashboard_initialized",
		zap.String("date", today.String()),
		zap.Int("todays_tasks", len(todays)),
		zap.Int("suggestions", len(c.suggestions)),
	)
	return model, nil
}

// Refresh re-reads the persisted task collection and applies any pending day
// rollover. The background worker calls this so the read path never serves a
// stale snapshot that could resurrect deleted or completed tasks.
func (c *Coordinator) Refresh(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	today := c.clock.Today()
	if err := c.rolloverDailyXP(ctx, today); err != nil {
		return err
	}
	return c.tasks.Refresh(ctx)
}

// CompleteTask completes the task, awards the flat point rate and bumps the
// lifetime completion counter. A missing or already-completed task fails with
// NotFound before any mutation; the error propagates unchanged.
func (c *Coordinator) CompleteTask(ctx context.Context, id string) (*CompleteResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	task, err := c.tasks.Complete(ctx, id)
	if err != nil {
		return nil, err
	}

	award, err := c.stats.AwardPoints(ctx, c.pointsPerTask)
	if err != nil {
		return nil, fmt.Errorf("task completed but points not awarded: %w", err)
	}
	updated, err := c.stats.IncrementCompleted(ctx)
	if err != nil {
		return nil, fmt.Errorf("task completed but completion count not updated: %w", err)
	}

	return &CompleteResult{
		Task:          *task,
		PointsAwarded: c.pointsPerTask,
		LeveledUp:     award.LeveledUp,
		NewLevel:      award.NewLevel,
		Stats:         *updated,
	}, nil
}

// CreateTask adds a user-entered task.
func (c *Coordinator) CreateTask(ctx context.Context, input tasks.CreateInput) (*models.Task, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.tasks.Create(ctx, input)
}

// DeleteTask removes a task; absent ids are a no-op.
func (c *Coordinator) DeleteTask(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.tasks.Delete(ctx, id)
}

// AcceptSuggestion converts a suggestion into a real task with a fresh id and
// fromSuggestion provenance, and drops it from the session list. Accepting an
// absent suggestion (stale UI after a dismiss) fails with NotFound.
func (c *Coordinator) AcceptSuggestion(ctx context.Context, id string) (*models.Task, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := -1
	for i := range c.suggestions {
		if c.suggestions[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, models.NewNotFoundError("suggestion", id)
	}

	s := c.suggestions[idx]
	minutes := s.TimeMinutes
	task, err := c.tasks.Create(ctx, tasks.CreateInput{
		Title:          s.Title,
		Category:       s.Category,
		Priority:       s.Priority,
		TimeMinutes:    &minutes,
		FromSuggestion: true,
	})
	if err != nil {
		return nil, err
	}

	c.suggestions = append(c.suggestions[:idx], c.suggestions[idx+1:]...)

	c.logger.Info("suggestion_accepted",
		zap.String("suggestion_id", id),
		zap.String("task_id", task.ID),
	)
	return task, nil
}

// DismissSuggestion drops a suggestion from the session list. Unlike accept,
// dismiss is idempotent: an absent id is success, not an error.
func (c *Coordinator) DismissSuggestion(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.suggestions {
		if c.suggestions[i].ID == id {
			c.suggestions = append(c.suggestions[:i], c.suggestions[i+1:]...)
			c.logger.Info("suggestion_dismissed", zap.String("suggestion_id", id))
			return
		}
	}
}

// Suggestions returns the current ephemeral suggestion list.
func (c *Coordinator) Suggestions() []models.Suggestion {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.suggestionSnapshot()
}

// TodaysTasks returns the pending tasks for the current day.
func (c *Coordinator) TodaysTasks(ctx context.Context) ([]models.Task, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tasks.ListForDay(ctx, c.clock.Today())
}

// rolloverDailyXP resets XPToday exactly once per calendar day. The marker
// for the last reset lives under its own store key, separate from the streak
// date inside the stats blob.
func (c *Coordinator) rolloverDailyXP(ctx context.Context, today models.Date) error {
	var lastReset models.Date
	found, err := c.store.Get(ctx, store.KeyLastActiveDate, &lastReset)
	if err != nil {
		return fmt.Errorf("failed to read rollover marker: %w", err)
	}

	if found && lastReset == today {
		return nil
	}

	if found {
		if err := c.stats.ResetDailyXP(ctx, today); err != nil {
			return err
		}
	}

	if err := c.store.Set(ctx, store.KeyLastActiveDate, today); err != nil {
		return fmt.Errorf("failed to write rollover marker: %w", err)
	}
	return nil
}

// fetchTemplates gathers template lists per category. Failures are logged and
// swallowed: templates must never block initialization.
func (c *Coordinator) fetchTemplates(ctx context.Context) map[models.Category][]templates.Template {
	if c.source == nil {
		return nil
	}

	result := make(map[models.Category][]templates.Template)
	for _, category := range models.Categories() {
		list, err := c.source.Fetch(ctx, category)
		if err != nil {
			c.logger.Warn("template_fetch_failed",
				zap.String("category", string(category)),
				zap.Error(err),
			)
			continue
		}
		if len(list) > 0 {
			result[category] = list
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

func (c *Coordinator) suggestionSnapshot() []models.Suggestion {
	snapshot := make([]models.Suggestion, len(c.suggestions))
	copy(snapshot, c.suggestions)
	return snapshot
}

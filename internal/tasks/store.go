// Package tasks owns the task collection: creation, completion, deletion and
// day filtering. The persisted list is authoritative; the in-memory mirror is
// write-through and refreshed whenever the caller suspects staleness.
package tasks

import (
	"context"
	"fmt"

	"github.com/dayboard/dayboard/internal/clock"
	"github.com/dayboard/dayboard/internal/models"
	"github.com/dayboard/dayboard/internal/store"
	"github.com/dayboard/dayboard/internal/validation"
	"go.uber.org/zap"
)

// CreateInput carries the validated fields for a new task.
type CreateInput struct {
	Title          string          `json:"title" validate:"required,min=1,max=500"`
	Category       models.Category `json:"category" validate:"required,task_category"`
	Priority       models.Priority `json:"priority,omitempty" validate:"omitempty,task_priority"`
	TimeMinutes    *int            `json:"time_minutes,omitempty" validate:"omitempty,min=0"`
	Date           models.Date     `json:"date,omitempty"`
	FromSuggestion bool            `json:"from_suggestion,omitempty"`
}

// Store manages the persisted task collection.
type Store struct {
	store  store.Store
	clock  clock.Clock
	ids    clock.IDGenerator
	logger *zap.Logger

	mirror []models.Task
	loaded bool
}

// NewStore creates a task store.
func NewStore(s store.Store, clk clock.Clock, ids clock.IDGenerator, logger *zap.Logger) *Store {
	return &Store{
		store:  s,
		clock:  clk,
		ids:    ids,
		logger: logger,
	}
}

// Create validates the input, assigns a fresh id and defaults, appends the
// task to the persisted collection and returns it. Validation failures leave
// the store untouched.
func (s *Store) Create(ctx context.Context, input CreateInput) (*models.Task, error) {
	input.Title = validation.SanitizeTitle(input.Title)
	if input.Title == "" {
		return nil, models.NewValidationError("title", "must not be empty")
	}
	if err := validation.Validate.Struct(input); err != nil {
		return nil, models.NewValidationError("input", err.Error())
	}
	if input.TimeMinutes != nil && *input.TimeMinutes < 0 {
		return nil, models.NewValidationError("time_minutes", "must be non-negative")
	}

	if input.Priority == "" {
		input.Priority = models.PriorityMedium
	}
	if input.Date.IsZero() {
		input.Date = s.clock.Today()
	}

	list, err := s.reload(ctx)
	if err != nil {
		return nil, err
	}

	task := models.Task{
		ID:             s.ids.Next(),
		Title:          input.Title,
		Category:       input.Category,
		Priority:       input.Priority,
		TimeMinutes:    input.TimeMinutes,
		Date:           input.Date,
		FromSuggestion: input.FromSuggestion,
		CreatedAt:      s.clock.Now(),
	}
	list = append(list, task)

	if err := s.persist(ctx, list); err != nil {
		return nil, err
	}

	s.logger.Info("task_created",
		zap.String("task_id", task.ID),
		zap.String("category", string(task.Category)),
		zap.String("date", task.Date.String()),
		zap.Bool("from_suggestion", task.FromSuggestion),
	)
	return &task, nil
}

// Complete marks a pending task completed and stamps CompletedAt. A missing
// id or an already-completed task both fail with NotFound: a second
// completion would double-award points upstream, so it is an error rather
// than a no-op.
func (s *Store) Complete(ctx context.Context, id string) (*models.Task, error) {
	list, err := s.reload(ctx)
	if err != nil {
		return nil, err
	}

	for i := range list {
		if list[i].ID != id {
			continue
		}
		if list[i].Completed {
			return nil, models.NewNotFoundError("task", id)
		}

		now := s.clock.Now()
		list[i].Completed = true
		list[i].CompletedAt = &now

		if err := s.persist(ctx, list); err != nil {
			return nil, err
		}

		completed := list[i]
		s.logger.Info("task_completed", zap.String("task_id", id))
		return &completed, nil
	}

	return nil, models.NewNotFoundError("task", id)
}

// Delete removes a task unconditionally. Deleting an absent id is a no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	list, err := s.reload(ctx)
	if err != nil {
		return err
	}

	filtered := make([]models.Task, 0, len(list))
	removed := false
	for _, task := range list {
		if task.ID == id {
			removed = true
			continue
		}
		filtered = append(filtered, task)
	}

	if !removed {
		return nil
	}

	if err := s.persist(ctx, filtered); err != nil {
		return err
	}

	s.logger.Info("task_deleted", zap.String("task_id", id))
	return nil
}

// ListForDay returns the non-completed tasks dated on the given calendar day,
// in insertion order. Order matters for stable rendering, not correctness.
func (s *Store) ListForDay(ctx context.Context, day models.Date) ([]models.Task, error) {
	if !s.loaded {
		if _, err := s.reload(ctx); err != nil {
			return nil, err
		}
	}

	var result []models.Task
	for _, task := range s.mirror {
		if !task.Completed && task.Date == day {
			result = append(result, task)
		}
	}
	return result, nil
}

// All returns every task in the mirror, loading it first if needed.
func (s *Store) All(ctx context.Context) ([]models.Task, error) {
	if !s.loaded {
		if _, err := s.reload(ctx); err != nil {
			return nil, err
		}
	}
	result := make([]models.Task, len(s.mirror))
	copy(result, s.mirror)
	return result, nil
}

// Refresh discards the mirror and re-reads the persisted collection. The
// periodic refresh path calls this so tasks deleted or completed through
// another operation are never resurrected from a stale snapshot.
func (s *Store) Refresh(ctx context.Context) error {
	_, err := s.reload(ctx)
	return err
}

// reload reads the persisted collection and updates the mirror. Mutations
// always start here so they operate on the store's truth.
func (s *Store) reload(ctx context.Context) ([]models.Task, error) {
	var list []models.Task
	if _, err := s.store.Get(ctx, store.KeyUserTasks, &list); err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	s.mirror = list
	s.loaded = true
	return list, nil
}

func (s *Store) persist(ctx context.Context, list []models.Task) error {
	if err := s.store.Set(ctx, store.KeyUserTasks, list); err != nil {
		return fmt.Errorf("failed to persist tasks: %w", err)
	}
	s.mirror = list
	return nil
}

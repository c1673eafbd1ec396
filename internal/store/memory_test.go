package store

import (
	"context"
	"errors"
	"testing"

	"github.com/dayboard/dayboard/internal/models"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()

	stats := models.UserStats{TotalPoints: 120, Level: 1, StreakDays: 3}
	if err := s.Set(ctx, KeyUserStats, &stats); err != nil {
		t.Fatalf("Failed to set: %v", err)
	}

	var loaded models.UserStats
	found, err := s.Get(ctx, KeyUserStats, &loaded)
	if err != nil {
		t.Fatalf("Failed to get: %v", err)
	}
	if !found {
		t.Fatal("Expected key to be present")
	}
	if loaded.TotalPoints != 120 || loaded.StreakDays != 3 {
		t.Errorf("Unexpected value: %+v", loaded)
	}
}

func TestMemoryStore_MissingKey(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()

	var dest models.UserStats
	found, err := s.Get(context.Background(), "nope", &dest)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if found {
		t.Error("Expected missing key to report found=false")
	}
}

func TestMemoryStore_FailNext(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()

	failure := models.StoreError("set", errors.New("boom"))
	s.FailNext = failure

	if err := s.Set(ctx, KeyUserTasks, []models.Task{}); !errors.Is(err, models.ErrStoreUnavailable) {
		t.Errorf("Expected store-unavailable error, got %v", err)
	}

	// Failure is one-shot
	if err := s.Set(ctx, KeyUserTasks, []models.Task{}); err != nil {
		t.Errorf("Expected second set to succeed, got %v", err)
	}
}

package models

import "time"

// Category classifies a task by the dashboard section it belongs to
type Category string

const (
	CategoryStudy    Category = "study"
	CategoryMeals    Category = "meals"
	CategoryCleaning Category = "cleaning"
	CategoryBudget   Category = "budget"
	CategoryDIY      Category = "diy"
	CategoryOther    Category = "other"
)

// Categories lists every valid category value.
func Categories() []Category {
	return []Category{
		CategoryStudy,
		CategoryMeals,
		CategoryCleaning,
		CategoryBudget,
		CategoryDIY,
		CategoryOther,
	}
}

// Valid reports whether c is one of the enumerated categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryStudy, CategoryMeals, CategoryCleaning, CategoryBudget, CategoryDIY, CategoryOther:
		return true
	default:
		return false
	}
}

// Priority represents how urgent a task is
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the enumerated priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Task represents a single dashboard task. Completion is one-way: a completed
// task never returns to pending, it can only be deleted.
type Task struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Category       Category   `json:"category"`
	Priority       Priority   `json:"priority"`
	TimeMinutes    *int       `json:"time_minutes,omitempty"`
	Date           Date       `json:"date"`
	Completed      bool       `json:"completed"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	FromSuggestion bool       `json:"from_suggestion"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Package suggest generates context-aware task recommendations from calendar
// heuristics. Generation is a pure function of the calendar day and the
// caller's task list: no randomness, no clock reads, no stored state.
package suggest

import (
	"time"

	"github.com/dayboard/dayboard/internal/models"
)

// DefaultMaxSuggestions caps a generation batch.
const DefaultMaxSuggestions = 4

// Policy tunes rule evaluation.
type Policy struct {
	// SuppressIfCategoryPresent skips a rule when the existing task list
	// already has a pending task in the rule's category. The source
	// behavior is to always emit matching suggestions, so this defaults
	// to off.
	SuppressIfCategoryPresent bool
}

// Engine evaluates the suggestion rules.
type Engine struct {
	policy Policy
}

// NewEngine creates a suggestion engine with the given policy.
func NewEngine(policy Policy) *Engine {
	return &Engine{policy: policy}
}

// rule is a single calendar heuristic. All matching rules fire; the result
// is truncated to maxCount afterwards.
type rule struct {
	key     string
	matches func(day models.Date) bool
	build   func() models.Suggestion
}

func weekday(day models.Date) bool {
	wd := day.Weekday()
	return wd >= time.Monday && wd <= time.Friday
}

func sunday(day models.Date) bool {
	return day.Weekday() == time.Sunday
}

func weekend(day models.Date) bool {
	wd := day.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func monthStart(day models.Date) bool {
	return day.DayOfMonth() <= 5
}

// Rule ids are stable per rule, not random: two calls with the same inputs
// must produce identical output, ids included.
var rules = []rule{
	{
		key:     "weekday-study",
		matches: weekday,
		build: func() models.Suggestion {
			return models.Suggestion{
				ID:          "weekday-study",
				Title:       "Study session",
				Category:    models.CategoryStudy,
				Priority:    models.PriorityHigh,
				TimeMinutes: 45,
				Reason:      "It's a weekday - keep up with your coursework",
				Icon:        "📚",
			}
		},
	},
	{
		key:     "sunday-meal-prep",
		matches: sunday,
		build: func() models.Suggestion {
			return models.Suggestion{
				ID:          "sunday-meal-prep",
				Title:       "Meal prep for the week",
				Category:    models.CategoryMeals,
				Priority:    models.PriorityMedium,
				TimeMinutes: 60,
				Reason:      "Sunday is a good day to prep meals for the week ahead",
				Icon:        "🍲",
			}
		},
	},
	{
		key:     "weekend-cleaning",
		matches: weekend,
		build: func() models.Suggestion {
			return models.Suggestion{
				ID:          "weekend-cleaning",
				Title:       "Weekly cleaning",
				Category:    models.CategoryCleaning,
				Priority:    models.PriorityMedium,
				TimeMinutes: 30,
				Reason:      "Weekend - a good time to tidy up your space",
				Icon:        "🧹",
			}
		},
	},
	{
		key:     "month-start-budget",
		matches: monthStart,
		build: func() models.Suggestion {
			return models.Suggestion{
				ID:          "month-start-budget",
				Title:       "Budget review",
				Category:    models.CategoryBudget,
				Priority:    models.PriorityHigh,
				TimeMinutes: 20,
				Reason:      "Start of the month - review your budget and spending",
				Icon:        "💰",
			}
		},
	},
}

// Generate evaluates every rule for the given day and returns up to maxCount
// suggestions in rule order. Deterministic for identical inputs. Existing
// tasks are only consulted when SuppressIfCategoryPresent is set; the engine
// otherwise emits matching suggestions regardless of what is already planned.
func (e *Engine) Generate(today models.Date, existing []models.Task, maxCount int) []models.Suggestion {
	if maxCount <= 0 {
		maxCount = DefaultMaxSuggestions
	}

	var covered map[models.Category]bool
	if e.policy.SuppressIfCategoryPresent {
		covered = make(map[models.Category]bool, len(existing))
		for _, task := range existing {
			if !task.Completed {
				covered[task.Category] = true
			}
		}
	}

	var result []models.Suggestion
	for _, r := range rules {
		if !r.matches(today) {
			continue
		}
		s := r.build()
		if covered != nil && covered[s.Category] {
			continue
		}
		result = append(result, s)
		if len(result) == maxCount {
			break
		}
	}
	return result
}

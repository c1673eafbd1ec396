package validation

import (
	"errors"
	"testing"

	"github.com/dayboard/dayboard/internal/models"
)

func TestSanitizeTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Read chapter 3", "Read chapter 3"},
		{"surrounding whitespace", "  Laundry \t", "Laundry"},
		{"control characters stripped", "Lau\x00nd\x07ry", "Laundry"},
		{"newline and tab kept", "line one\nline\ttwo", "line one\nline\ttwo"},
		{"only whitespace", "   \t ", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := SanitizeTitle(tt.input); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestValidateCategory(t *testing.T) {
	t.Parallel()

	for _, category := range models.Categories() {
		if err := ValidateCategory(string(category)); err != nil {
			t.Errorf("Expected %s to be valid, got %v", category, err)
		}
	}

	err := ValidateCategory("chores")
	var validationErr *models.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
	if validationErr.Field != "category" {
		t.Errorf("Expected field category, got %s", validationErr.Field)
	}
}

func TestValidatePriority(t *testing.T) {
	t.Parallel()

	for _, priority := range []string{"low", "medium", "high"} {
		if err := ValidatePriority(priority); err != nil {
			t.Errorf("Expected %s to be valid, got %v", priority, err)
		}
	}
	if err := ValidatePriority("urgent"); err == nil {
		t.Error("Expected error for unknown priority")
	}
}

func TestValidate_EnumTags(t *testing.T) {
	t.Parallel()

	type form struct {
		Category string `validate:"task_category"`
		Priority string `validate:"omitempty,task_priority"`
	}

	if err := Validate.Struct(form{Category: "study", Priority: "high"}); err != nil {
		t.Errorf("Expected valid form, got %v", err)
	}
	if err := Validate.Struct(form{Category: "chores"}); err == nil {
		t.Error("Expected error for unknown category")
	}
	if err := Validate.Struct(form{Category: "study", Priority: "urgent"}); err == nil {
		t.Error("Expected error for unknown priority")
	}
}

package validation

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/dayboard/dayboard/internal/models"
	"github.com/go-playground/validator/v10"
)

var (
	// Validate is a shared validator instance
	Validate *validator.Validate
)

func init() {
	Validate = validator.New()

	// Register custom validators for enums
	// These should never fail in normal operation
	if err := Validate.RegisterValidation("task_category", validateCategory); err != nil {
		panic(fmt.Sprintf("failed to register task_category validator: %v", err))
	}
	if err := Validate.RegisterValidation("task_priority", validatePriority); err != nil {
		panic(fmt.Sprintf("failed to register task_priority validator: %v", err))
	}
}

// validateCategory validates that a string is a valid Category enum value
func validateCategory(fl validator.FieldLevel) bool {
	return models.Category(fl.Field().String()).Valid()
}

// validatePriority validates that a string is a valid Priority enum value
func validatePriority(fl validator.FieldLevel) bool {
	return models.Priority(fl.Field().String()).Valid()
}

// SanitizeTitle sanitizes a task title by trimming whitespace and removing
// control characters
func SanitizeTitle(title string) string {
	title = strings.TrimSpace(title)

	var sanitized strings.Builder
	for _, r := range title {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		sanitized.WriteRune(r)
	}

	return sanitized.String()
}

// ValidateCategory validates a Category string value
func ValidateCategory(value string) error {
	if !models.Category(value).Valid() {
		return models.NewValidationError("category",
			fmt.Sprintf("%q is not one of 'study', 'meals', 'cleaning', 'budget', 'diy', 'other'", value))
	}
	return nil
}

// ValidatePriority validates a Priority string value
func ValidatePriority(value string) error {
	if !models.Priority(value).Valid() {
		return models.NewValidationError("priority",
			fmt.Sprintf("%q is not one of 'low', 'medium', 'high'", value))
	}
	return nil
}

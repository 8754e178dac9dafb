package forms

import (
	"fmt"
	"regexp"

	"github.com/flowform/flowform-go/pkg/models"
)

var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidationResult maps field names to their errors, in check order.
type ValidationResult struct {
	IsValid bool
	Errors  map[string][]string
}

// ValidationError is the structured result surfaced when a submission is
// rejected and no error hook was supplied. It is never produced by
// Validate itself, which only returns the result.
type ValidationError struct {
	Result *ValidationResult
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("form validation failed for %d field(s)", len(e.Result.Errors))
}

// Validate checks every field of the form against its configuration.
// Fields hidden per the supplied visibility map are exempt from all
// checks. Errors accumulate per field in check order; IsValid is false as
// soon as any field has any error.
func Validate(state models.FormSnapshot, fields []models.FieldConfig, visible map[string]bool) *ValidationResult {
	result := &ValidationResult{IsValid: true, Errors: make(map[string][]string)}

	for _, field := range fields {
		if shown, ok := visible[field.FieldName]; ok && !shown {
			continue
		}

		errs := validateField(field, state[field.FieldName])
		if len(errs) > 0 {
			result.Errors[field.FieldName] = errs
			result.IsValid = false
		}
	}

	return result
}

func validateField(field models.FieldConfig, value any) []string {
	var errs []string

	if isEmpty(value) {
		if field.Required {
			errs = append(errs, fmt.Sprintf("%s is required", displayName(field)))
		}

		// Format and length checks only apply to present values.
		return errs
	}

	if field.Type == models.FieldTypeEmail {
		if text, ok := value.(string); ok && !emailShape.MatchString(text) {
			errs = append(errs, fmt.Sprintf("%s must be a valid email address", displayName(field)))
		}
	}

	if length, ok := valueLength(value); ok {
		if field.MinLength > 0 && length < field.MinLength {
			errs = append(errs, fmt.Sprintf("%s must be at least %d characters", displayName(field), field.MinLength))
		}

		if field.MaxLength > 0 && length > field.MaxLength {
			errs = append(errs, fmt.Sprintf("%s must be at most %d characters", displayName(field), field.MaxLength))
		}
	}

	return errs
}

func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []any:
		return len(v) == 0
	case []string:
		return len(v) == 0
	default:
		return false
	}
}

func valueLength(value any) (int, bool) {
	switch v := value.(type) {
	case string:
		return len(v), true
	case []any:
		return len(v), true
	case []string:
		return len(v), true
	default:
		return 0, false
	}
}

func displayName(field models.FieldConfig) string {
	if field.FieldDisplayName != "" {
		return field.FieldDisplayName
	}

	return field.FieldName
}

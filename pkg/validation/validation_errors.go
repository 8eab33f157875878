package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Messages maps a field name (as reported by the validator) to the single
// message shown to the user when any rule on that field fails.
type Messages map[string]string

// FormatValidationErrors converts validator.ValidationErrors to user-friendly
// messages. Order follows the validator, which walks struct fields in
// declaration order. Only the first failing rule of a field is reported.
func FormatValidationErrors(err error, messages Messages) []string {
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Not a validation error, return generic message
		return []string{err.Error()}
	}

	seen := make(map[string]bool, len(validationErrors))
	out := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		if seen[e.Field()] {
			continue
		}
		seen[e.Field()] = true

		if msg, ok := messages[e.Field()]; ok {
			out = append(out, msg)
			continue
		}
		out = append(out, formatSingleError(e))
	}
	return out
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	label := formatFieldName(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", label)
	case "min", "min_chars":
		return fmt.Sprintf("%s must be at least %s characters long.", label, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long.", label, param)
	case "email":
		return fmt.Sprintf("%s must be a valid email address.", label)
	default:
		return fmt.Sprintf("%s is invalid (%s).", label, e.Tag())
	}
}

// formatFieldName turns contact_name or ContactName into "Contact name".
func formatFieldName(s string) string {
	var b strings.Builder
	for i, r := range s {
		switch {
		case r == '_':
			b.WriteRune(' ')
		case i > 0 && r >= 'A' && r <= 'Z':
			b.WriteRune(' ')
			b.WriteRune(r + ('a' - 'A'))
		case i == 0 && r >= 'a' && r <= 'z':
			b.WriteRune(r - ('a' - 'A'))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

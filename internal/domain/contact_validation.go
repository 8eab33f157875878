package domain

import (
	"contact-form-backend/pkg/sanitizer"
	"contact-form-backend/pkg/validation"
)

// contactRules carries the validation tags. Field order is the order in
// which errors are reported.
type contactRules struct {
	ContactName   string `form:"contact_name" validate:"required,min_chars=2"`
	ContactEmail  string `form:"contact_email" validate:"required,email"`
	ContactReason string `form:"contact_reason" validate:"required"`
	Comments      string `form:"comments" validate:"required,min_chars=10"`
}

var contactMessages = validation.Messages{
	"contact_name":   "Contact name must be at least 2 characters long.",
	"contact_email":  "Please provide a valid email address.",
	"contact_reason": "Please select a reason for contact.",
	"comments":       "Comments must be at least 10 characters long.",
}

var contactValidator = validation.New()

// SanitizeContact cleans every field of the raw form.
func SanitizeContact(form ContactForm) ContactEcho {
	return ContactEcho{
		ContactName:   sanitizer.Clean(form.ContactName),
		ContactEmail:  sanitizer.Clean(form.ContactEmail),
		ContactReason: sanitizer.Clean(form.ContactReason),
		Comments:      sanitizer.Clean(form.Comments),
	}
}

// ValidateContact sanitizes the form and evaluates every rule. All rules run,
// so several errors can be reported at once.
func ValidateContact(form ContactForm) ValidationResult {
	echo := SanitizeContact(form)

	err := contactValidator.Struct(contactRules{
		ContactName:   echo.ContactName,
		ContactEmail:  echo.ContactEmail,
		ContactReason: echo.ContactReason,
		Comments:      echo.Comments,
	})
	if err != nil {
		return ValidationResult{
			Echo:   echo,
			Errors: validation.FormatValidationErrors(err, contactMessages),
		}
	}

	return ValidationResult{
		Echo: echo,
		submission: &Submission{
			contactName:   echo.ContactName,
			contactEmail:  echo.ContactEmail,
			contactReason: echo.ContactReason,
			comments:      echo.Comments,
		},
	}
}

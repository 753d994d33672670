// Package validation implements the field validation engine. All functions
// are pure: same field and value always yield the same result.
package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/souravsharma24/onboarding-form-sub000/internal/forms"
)

// Result is returned as data, never as an error: invalid input is a normal
// outcome, not a failure of the engine.
type Result struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

var (
	emailRe        = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	personalNameRe = regexp.MustCompile(`^[a-zA-Z\s\-']+$`)
	businessNameRe = regexp.MustCompile(`^[a-zA-Z0-9\s\-'&.,()]+$`)
)

func ok() Result {
	return Result{Valid: true}
}

func invalid(msg string) Result {
	return Result{Valid: false, Message: msg}
}

// Validate checks a scalar value against the field's type and kind rules.
func Validate(field forms.Field, value string) Result {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return invalid(fmt.Sprintf("%s is required", field.Label))
	}

	switch field.Type {
	case forms.TypeEmail:
		if len(value) < 5 || !emailRe.MatchString(value) {
			return invalid("Enter a valid email address")
		}
		return ok()

	case forms.TypeURL:
		if len(value) < 10 {
			return invalid("Enter a valid URL starting with http:// or https://")
		}
		u, err := url.Parse(value)
		if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return invalid("Enter a valid URL starting with http:// or https://")
		}
		return ok()

	case forms.TypeText:
		return validateText(field, trimmed)

	case forms.TypeCheckbox:
		// Checkboxes are boolean-as-string; only a true box counts.
		if trimmed != "true" {
			return invalid(fmt.Sprintf("%s is required", field.Label))
		}
		return ok()

	case forms.TypeTextarea:
		if len(trimmed) < 10 || len(trimmed) > 1000 {
			return invalid(fmt.Sprintf("%s must be between 10 and 1000 characters", field.Label))
		}
		return ok()

	default:
		// select, radio, checkbox, file, date and anything unknown:
		// non-empty is enough.
		return ok()
	}
}

func validateText(field forms.Field, trimmed string) Result {
	switch field.Kind {
	case forms.KindPersonalName:
		if len(trimmed) < 2 || len(trimmed) > 50 {
			return invalid(fmt.Sprintf("%s must be between 2 and 50 characters", field.Label))
		}
		if !personalNameRe.MatchString(trimmed) {
			return invalid(fmt.Sprintf("%s may only contain letters, spaces, hyphens and apostrophes", field.Label))
		}
	case forms.KindBusinessName:
		if len(trimmed) < 3 || len(trimmed) > 100 {
			return invalid(fmt.Sprintf("%s must be between 3 and 100 characters", field.Label))
		}
		if !businessNameRe.MatchString(trimmed) {
			return invalid(fmt.Sprintf("%s contains unsupported characters", field.Label))
		}
	default:
		if len(trimmed) < 2 || len(trimmed) > 200 {
			return invalid(fmt.Sprintf("%s must be between 2 and 200 characters", field.Label))
		}
	}
	return ok()
}

// ValidateValue checks a structured value: lists pass when non-empty, files
// when they carry a name, and scalars go through Validate.
func ValidateValue(field forms.Field, value forms.FieldValue) Result {
	if !value.Present() {
		return invalid(fmt.Sprintf("%s is required", field.Label))
	}
	if len(value.List) > 0 || value.File != nil {
		return ok()
	}
	return Validate(field, value.Text)
}

// Completed reports whether a value counts toward progress: it must be
// present and pass validation. Present-but-invalid does not count.
func Completed(field forms.Field, value forms.FieldValue) bool {
	return value.Present() && ValidateValue(field, value).Valid
}

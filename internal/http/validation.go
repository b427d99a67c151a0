package http

import (
	"fmt"
	"strings"
	"time"

	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/entities"
)

// ValidationError reports a request field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Reason: "is required"}
	}
	return nil
}

// validEmail applies a loose structural check. The address must contain
// both "@" and ".".
func validEmail(field, value string) error {
	if value == "" {
		return nil
	}
	if !strings.Contains(value, "@") || !strings.Contains(value, ".") {
		return &ValidationError{Field: field, Reason: "is not a valid email address"}
	}
	return nil
}

func parseDate(value string) (time.Time, error) {
	return time.Parse(entities.DateFormat, value)
}

// validDate rejects values that do not parse as an ISO calendar date.
func validDate(field, value string) error {
	if value == "" {
		return nil
	}
	if _, err := parseDate(value); err != nil {
		return &ValidationError{Field: field, Reason: "must be a date in " + entities.DateFormat + " format"}
	}
	return nil
}

package errs

import (
	"errors"
	"strings"

	"gitlab.com/clawgames.net/internal/domain"
)

var (
	RateLimited    = errors.New("rate limited")
	Duplicate      = errors.New("duplicate key")
	Persistence    = errors.New("persistence failure")
	NotFound       = errors.New("not found")
	RatingDebounce = errors.New("too many rating submissions")
)

// ValidationError carries every field-shape problem found in a request
type ValidationError struct {
	Messages []string
}

func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// SecurityViolation is a fail-closed scanner rejection. The submission is
// rejected wholesale.
type SecurityViolation struct {
	Violations []domain.Violation
}

func (e *SecurityViolation) Error() string {
	ids := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		ids = append(ids, string(v.RuleID))
	}
	return "security violation: " + strings.Join(ids, ", ")
}

// Details returns the caller-facing messages of a validation or security error
func Details(err error) ([]string, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Messages, true
	}
	var sv *SecurityViolation
	if errors.As(err, &sv) {
		return domain.Messages(sv.Violations), true
	}
	return nil, false
}

package suggestion

import (
	"errors"
	"fmt"
	"strings"
)

// ErrQuotaExceeded terminates a request at admission. A backend failure in
// the quota store surfaces the same way: the caller is denied either way.
var ErrQuotaExceeded = errors.New("suggestion quota exhausted")

type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every violation found, not just the first, so a
// client can fix its request in one round trip.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("%s: %s", v.Field, v.Message))
	}
	return "invalid request: " + strings.Join(parts, "; ")
}

// CollaboratorError marks an unrecoverable failure of a downstream
// collaborator (place search, route optimization). Degradable collaborators
// (context lookup) never produce one.
type CollaboratorError struct {
	Collaborator string
	Err          error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s collaborator failed: %v", e.Collaborator, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

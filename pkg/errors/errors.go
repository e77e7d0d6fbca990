package errors

import (
	"fmt"

	"github.com/farmience/orderdesk/internal/domain"
)

// ErrLookupNotFound is returned when an entity cannot be located by id or
// display number, typically during the post-action refetch step.
type ErrLookupNotFound struct {
	Resource string
	Key      string
}

func (e *ErrLookupNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.Key)
}

// ErrTransport is returned when the backend store fails a request.
// Status is the HTTP status code when one was received, 0 otherwise.
type ErrTransport struct {
	Op     string
	Status int
	Body   string
	Err    error
}

func (e *ErrTransport) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: backend returned %d: %s", e.Op, e.Status, e.Body)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ErrTransport) Unwrap() error {
	return e.Err
}

// ErrStaleWrite is returned when the backend rejects a status submission
// because the record changed underneath it.
type ErrStaleWrite struct {
	Op  string
	Key string
}

func (e *ErrStaleWrite) Error() string {
	return fmt.Sprintf("%s: write rejected as stale for %s", e.Op, e.Key)
}

// ErrValidation is returned when a request payload fails validation
type ErrValidation struct {
	Message string
	Fields  map[string]string
}

func (e *ErrValidation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// ErrInvalidStateTransition is returned when an action is attempted from a
// status that does not permit it
type ErrInvalidStateTransition struct {
	Action string
	Kind   domain.SourceKind
	From   domain.UnifiedStatus
}

func (e *ErrInvalidStateTransition) Error() string {
	return fmt.Sprintf("%s not allowed for %s in status %s", e.Action, e.Kind, e.From)
}

package governance

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidHeader is returned when a buffer does not start with a well formed governance header.
	ErrInvalidHeader = errors.New("invalid governance header")

	// ErrInvalidPayload is returned when an action payload is truncated or malformed.
	ErrInvalidPayload = errors.New("invalid governance payload")

	// ErrUnknownAction is returned when an action name has no (module, action) binding.
	ErrUnknownAction = errors.New("unknown governance action")
)

// UnsupportedActionError is returned when a header is well formed but no decoder
// is registered for its action.
type UnsupportedActionError struct {
	Action ActionName
}

// NewUnsupportedActionError creates a new UnsupportedActionError.
func NewUnsupportedActionError(action ActionName) *UnsupportedActionError {
	return &UnsupportedActionError{Action: action}
}

func (e *UnsupportedActionError) Error() string {
	return fmt.Sprintf("no decoder registered for governance action %s", e.Action)
}

// ActionMismatchError is returned when an action specific decoder is handed a
// buffer whose header names a different action.
type ActionMismatchError struct {
	Expected ActionName
	Actual   ActionName
}

// NewActionMismatchError creates a new ActionMismatchError.
func NewActionMismatchError(expected, actual ActionName) *ActionMismatchError {
	return &ActionMismatchError{Expected: expected, Actual: actual}
}

func (e *ActionMismatchError) Error() string {
	return fmt.Sprintf("expected governance action %s, got %s", e.Expected, e.Actual)
}

// Unwrap lets callers treat a mismatch as a malformed payload.
func (e *ActionMismatchError) Unwrap() error {
	return ErrInvalidPayload
}

// FieldTooLongError is returned when a variable length field does not fit its length prefix.
type FieldTooLongError struct {
	Field  string
	Length int
	Max    int
}

// NewFieldTooLongError creates a new FieldTooLongError.
func NewFieldTooLongError(field string, length, maxLength int) *FieldTooLongError {
	return &FieldTooLongError{Field: field, Length: length, Max: maxLength}
}

func (e *FieldTooLongError) Error() string {
	return fmt.Sprintf("field %s has length %d, maximum is %d", e.Field, e.Length, e.Max)
}

func malformed(action ActionName, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidPayload, action, fmt.Sprintf(format, args...))
}

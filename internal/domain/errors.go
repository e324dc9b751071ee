package domain

import (
	"errors"
	"fmt"
)

// Engine errors.
var (
	ErrNotFound           = errors.New("record not found")
	ErrPermissionDenied   = errors.New("actor lacks edit permission for this staff member")
	ErrRollbackExpired    = errors.New("rollback window has passed, batch is permanent")
	ErrBatchRolledBack    = errors.New("batch has already been rolled back")
	ErrHistoricalReadOnly = errors.New("historical day views are read-only")
)

// ValidationError is a recoverable input failure. In batch contexts it is
// collected per row; in interactive contexts it blocks the operation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

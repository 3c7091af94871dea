package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	ErrCodeNotFound      = errors.New("redeem code not found")
	ErrCodeInactive      = errors.New("redeem code is inactive")
	ErrCodeExpired       = errors.New("redeem code has expired")
	ErrCodeExhausted     = errors.New("redeem code usage limit reached")
	ErrCodeNotApplicable = errors.New("redeem code does not apply to this cart")
)

// ValidationError reports bad input on a single field.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Field == "" {
		return msg
	}
	return fmt.Sprintf("%s: %s", e.Field, msg)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

type NotFoundError struct {
	Resource string
	ID       any
}

func (e *NotFoundError) Error() string {
	if e.ID == nil {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %v not found", e.Resource, e.ID)
}

// SchemaNotInitializedError is returned when a table the query needs does not
// exist yet. The database has to be migrated before the service can be used.
type SchemaNotInitializedError struct {
	Table string
	Err   error
}

func (e *SchemaNotInitializedError) Error() string {
	if e.Table == "" {
		return "database not initialized, run setup"
	}
	return fmt.Sprintf("database not initialized (missing table %q), run setup", e.Table)
}

func (e *SchemaNotInitializedError) Unwrap() error { return e.Err }

// ConflictError covers duplicates and state transitions that are not allowed.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsSchemaNotInitialized(err error) bool {
	var se *SchemaNotInitializedError
	return errors.As(err, &se)
}

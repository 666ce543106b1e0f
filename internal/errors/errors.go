package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for type checking
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrStoreClosed  = errors.New("store closed")
)

// NotFoundError indicates a resource doesn't exist.
type NotFoundError struct {
	Resource string // "palette", "slot"
	ID       string // The identifier that wasn't found
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// ValidationError indicates invalid user input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// Helper constructors for common cases

func PaletteNotFound(index int) error {
	return &NotFoundError{Resource: "palette", ID: fmt.Sprintf("%d", index)}
}

func InvalidField(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func UnknownStorage(backend string) error {
	return &ValidationError{
		Field:   "storage",
		Message: fmt.Sprintf("unknown backend %q (supported: file, sqlite)", backend),
	}
}

func UnknownExportFormat(format string) error {
	return &ValidationError{
		Field:   "format",
		Message: fmt.Sprintf("unknown export format %q (supported: css, json, txt)", format),
	}
}

// IsNotFound checks if an error is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors. Transports map these to status codes with errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrUnsupportedType = errors.New("unsupported mortgage type")
	ErrValidation      = errors.New("validation failed")
	ErrConflict        = errors.New("conflict")
)

// NotFoundError reports that an identifier did not resolve to a stored record.
// Entity is "property" or "mortgage".
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFound is a shorthand used by the repositories
func NewNotFound(entity string) error {
	return &NotFoundError{Entity: entity}
}

// UnsupportedTypeError carries the raw mortgage type that failed to resolve.
type UnsupportedTypeError struct {
	Value string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported mortgage type %q", e.Value)
}

func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsEntityNotFound reports whether err is a NotFoundError for the given entity.
func IsEntityNotFound(err error, entity string) bool {
	var nf *NotFoundError
	return errors.As(err, &nf) && nf.Entity == entity
}

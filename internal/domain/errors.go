package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Services return errors that wrap exactly one of these so the
// transport layer can map them to a status code with errors.Is.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
)

// Error carries a kind plus a caller-facing message.
type Error struct {
	kind    error
	message string
}

func (e *Error) Error() string { return e.message }
func (e *Error) Unwrap() error { return e.kind }

func NewInvalidInput(format string, args ...any) error {
	return &Error{kind: ErrInvalidInput, message: fmt.Sprintf(format, args...)}
}

func NewNotFound(format string, args ...any) error {
	return &Error{kind: ErrNotFound, message: fmt.Sprintf(format, args...)}
}

func NewConflict(format string, args ...any) error {
	return &Error{kind: ErrConflict, message: fmt.Sprintf(format, args...)}
}

func NewForbidden(format string, args ...any) error {
	return &Error{kind: ErrForbidden, message: fmt.Sprintf(format, args...)}
}

func NewUnauthorized(format string, args ...any) error {
	return &Error{kind: ErrUnauthorized, message: fmt.Sprintf(format, args...)}
}

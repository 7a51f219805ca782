package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed or missing input.
	ErrValidation = errors.New("validation failed")
	// ErrParse marks a value that does not match its required format.
	ErrParse = errors.New("parse failed")
	// ErrConflict is returned when a unique attribute is already taken.
	ErrConflict = errors.New("conflict")
	// ErrAuthFailure indicates that provided credentials are incorrect.
	ErrAuthFailure = errors.New("invalid credentials")
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDependency wraps failures of external collaborators.
	ErrDependency = errors.New("dependency failed")
)

// ParseError describes a field value that could not be parsed.
type ParseError struct {
	Field  string
	Value  string
	Layout string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s %q: expected %s", e.Field, e.Value, e.Layout)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is lets callers match any ParseError against both ErrParse and
// ErrValidation.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse || target == ErrValidation
}

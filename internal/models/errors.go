package models

import (
	"fmt"
)

// Error taxonomy surfaced at the request boundary. Handlers translate
// these into {error, details} JSON bodies: ValidationError -> 400,
// NotFoundError -> 404, everything else -> 500.

// ValidationError reports malformed or missing request input
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError from a format string
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a lookup that matched no rows
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// NewNotFoundError builds a NotFoundError from a format string
func NewNotFoundError(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// UpstreamError reports a failure from the external completion endpoint
type UpstreamError struct {
	Message string
	Status  int
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
	}
	return e.Message
}

// ResponseParseError reports completion output that could not be turned
// into a usable forecast: no bracketed numeric array, or a wrong length.
type ResponseParseError struct {
	Message string
}

func (e *ResponseParseError) Error() string {
	return e.Message
}

// DatabaseError wraps a query or connection failure
type DatabaseError struct {
	Op  string
	Err error
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("database error in %s: %v", e.Op, e.Err)
}

func (e *DatabaseError) Unwrap() error {
	return e.Err
}

package services

import (
	"errors"
	"net/http"

	"mongodeck/pkg/mongodb"
)

// ValidationError covers missing or malformed required input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError means the resolved predicate matched zero documents.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// ConnectionError means the remote was unreachable or refused the
// connection; the manager slot has already been reset when it is raised.
type ConnectionError struct {
	Message string
	Err     error
}

func (e *ConnectionError) Error() string { return e.Message }

func (e *ConnectionError) Unwrap() error { return e.Err }

// statusForError maps the error taxonomy onto HTTP status codes. Anything
// unclassified is an internal error.
func statusForError(err error) uint {
	var validationErr *ValidationError
	var notFoundErr *NotFoundError
	var connectionErr *ConnectionError

	switch {
	case errors.Is(err, mongodb.ErrNotConnected):
		return http.StatusServiceUnavailable
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &connectionErr):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

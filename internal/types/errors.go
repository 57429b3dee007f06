package types

import (
	"errors"
	"net/http"
)

// Service-layer error taxonomy. Handlers translate these to status codes;
// anything unrecognized is treated as a persistence failure and surfaced as a
// generic 500 so driver messages never reach clients.

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

type PersistenceError struct {
	Message string
	Err     error
}

func (e *PersistenceError) Error() string { return e.Message }
func (e *PersistenceError) Unwrap() error { return e.Err }

var (
	ErrNoPicksProvided = &ValidationError{Message: "No picks provided"}
	ErrAllPicksFailed  = &ValidationError{Message: "All picks failed to save"}
)

// StatusFor maps a service error to the HTTP status code it should surface as.
func StatusFor(err error) int {
	var validation *ValidationError
	var notFound *NotFoundError
	var conflict *ConflictError

	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &conflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// ClientMessage returns the message safe to show a client for err.
func ClientMessage(err error) string {
	if StatusFor(err) == http.StatusInternalServerError {
		return "Internal server error"
	}
	return err.Error()
}

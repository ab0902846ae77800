package domain

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrUnknownKind      = errors.New("unknown entity kind")
	ErrDeleteInProgress = errors.New("delete already in progress")
	ErrNoConfirmation   = errors.New("no pending delete confirmation")
)

// FieldError is a message attached to a single form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is returned for any upstream response the API did not accept:
// non-2xx statuses and 2xx envelopes with success=false.
type APIError struct {
	Status  int
	Message string
	Details []FieldError
	Body    []byte // raw response body, for inspection
}

func (e *APIError) Error() string { return e.Message }

// Is lets callers match status classes with the package sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	}
	return false
}

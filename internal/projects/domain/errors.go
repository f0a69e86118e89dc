package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound   = errors.New("project not found")
	ErrValidation = errors.New("invalid project data")
	ErrBackend    = errors.New("backend request failed")
	ErrTransport  = errors.New("backend unreachable")
	ErrDecode     = errors.New("malformed backend response")
	ErrMissingID  = errors.New("project id missing")
	ErrInFlight   = errors.New("request already in progress")
)

// APIError is a non-2xx answer from the backend.
// Message is whatever the error body carried under "message" or "error", possibly empty.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest:
		return ErrValidation
	default:
		return ErrBackend
	}
}

// MessageOr returns the backend-supplied message, or fallback when there was none.
func (e *APIError) MessageOr(fallback string) string {
	if e.Message != "" {
		return e.Message
	}
	return fallback
}

// FieldError is a validation failure caught before reaching the backend.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *FieldError) Unwrap() error {
	return ErrValidation
}

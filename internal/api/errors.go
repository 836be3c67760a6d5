package api

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork is returned when the request never produced an HTTP response
	ErrNetwork = errors.New("network error")

	// ErrInvalidRequest is returned for a 400 with a structured body
	ErrInvalidRequest = errors.New("invalid request")

	// ErrUnauthorized is returned for a 401
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned for a 403
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound is returned for a 404
	ErrNotFound = errors.New("resource not found")

	// ErrConflict is returned for a 409, e.g. a duplicate (store, item) pair
	ErrConflict = errors.New("resource conflict")

	// ErrRequestFailed covers every other non-2xx status
	ErrRequestFailed = errors.New("request failed")
)

// Error is the normalized failure envelope. Transport failures and
// backend-reported failures both surface through it; nothing escapes the
// client as a raw transport error.
type Error struct {
	Status  int                 // 0 for transport failures
	Message string              // user-facing message
	Fields  map[string][]string // optional field-level errors
	cause   error               // sentinel, drives errors.Is
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("api: %s", e.Message)
	}
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// FieldErrors extracts the field-level error map from err, if any.
func FieldErrors(err error) map[string][]string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Fields
	}
	return nil
}

// Message extracts the normalized user-facing message from err.
func Message(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

func sentinelForStatus(status int) error {
	switch status {
	case 400:
		return ErrInvalidRequest
	case 401:
		return ErrUnauthorized
	case 403:
		return ErrForbidden
	case 404:
		return ErrNotFound
	case 409:
		return ErrConflict
	default:
		return ErrRequestFailed
	}
}

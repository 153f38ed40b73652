package apperrors

import (
	"errors"
	"fmt"
)

// ErrValidation indicates that input data failed a local validation check.
// Validation errors never reach the ledger service.
var ErrValidation = errors.New("validation error")

// ErrEmptyCredentials indicates a login attempt with an empty username or password.
var ErrEmptyCredentials = &ValidationError{Title: "Validation Error", Reason: "Please enter your username and password"}

// ErrNotAuthenticated indicates an operation that requires an active session was
// attempted while logged out.
var ErrNotAuthenticated = errors.New("not authenticated")

// ErrSessionExpired is returned when the ledger service answers with 401.
var ErrSessionExpired = errors.New("session expired")

// ErrRemoteRejected indicates a non-success response from the ledger service.
var ErrRemoteRejected = errors.New("request rejected by ledger service")

// ErrConnectionFailure indicates a network-level failure reaching the ledger service.
var ErrConnectionFailure = errors.New("connection failure")

// ErrPartialFetch marks a per-account transaction fetch that was skipped.
var ErrPartialFetch = errors.New("partial fetch failure")

// ErrNotFound indicates that a requested resource could not be found locally.
var ErrNotFound = errors.New("resource not found")

// User-facing texts for the transport failure kinds.
const (
	SessionExpiredMessage    = "Your session has expired. Please login again."
	ConnectionFailureMessage = "Unable to reach the bank. Please check your connection."
)

// ValidationError carries a user-displayable reason for a rejected input.
type ValidationError struct {
	Title  string
	Reason string
}

// NewValidationError builds a ValidationError with the given title and reason.
func NewValidationError(title, reason string) *ValidationError {
	return &ValidationError{Title: title, Reason: reason}
}

func (e *ValidationError) Error() string { return e.Reason }

func (e *ValidationError) Unwrap() error { return ErrValidation }

// APIError is the uniform shape of every failure produced by the ledger transport.
type APIError struct {
	Kind       error // one of ErrRemoteRejected, ErrConnectionFailure, ErrSessionExpired
	StatusCode int   // zero for connection failures
	Message    string
	Cause      error
}

func (e *APIError) Error() string {
	return e.Message
}

// Is lets errors.Is match an APIError against its kind sentinel and its cause.
func (e *APIError) Is(target error) bool {
	return target == e.Kind
}

func (e *APIError) Unwrap() error { return e.Cause }

// PartialFetchFailure records one account whose transaction log could not be loaded.
type PartialFetchFailure struct {
	AccountID int64
	Err       error
}

func (f PartialFetchFailure) Error() string {
	return fmt.Sprintf("transactions for account %d: %v", f.AccountID, f.Err)
}

func (f PartialFetchFailure) Is(target error) bool { return target == ErrPartialFetch }

func (f PartialFetchFailure) Unwrap() error { return f.Err }

// UserMessage returns the text that should be shown to the user for err.
// Server messages are surfaced verbatim; connection failures get a generic hint.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Reason
	}
	switch {
	case errors.Is(err, ErrSessionExpired):
		return SessionExpiredMessage
	case errors.Is(err, ErrConnectionFailure):
		return ConnectionFailureMessage
	case errors.Is(err, ErrNotAuthenticated):
		return "Please login to continue."
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if fallback != "" {
		return fallback
	}
	return err.Error()
}

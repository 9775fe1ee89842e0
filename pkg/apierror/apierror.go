package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindInvalidInput    Kind = "INVALID_INPUT"
	KindUnauthenticated Kind = "UNAUTHENTICATED"
	KindForbidden       Kind = "FORBIDDEN"
	KindNotFound        Kind = "NOT_FOUND"
	KindConflict        Kind = "CONFLICT"
	KindInternal        Kind = "INTERNAL"
)

type APIError struct {
	Kind       Kind   `json:"kind"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	HTTPStatus int    `json:"-"`
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}

	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Details)
	}

	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is lets errors.Is match two APIErrors of the same kind.
func (e *APIError) Is(target error) bool {
	other, ok := target.(*APIError)
	if !ok || e == nil || other == nil {
		return false
	}
	return e.Kind == other.Kind
}

func New(kind Kind, message string, details string, status int) *APIError {
	return &APIError{Kind: kind, Message: message, Details: details, HTTPStatus: status}
}

func InvalidInput(message string, details string) *APIError {
	return New(KindInvalidInput, message, details, http.StatusBadRequest)
}

func Unauthenticated(message string) *APIError {
	return New(KindUnauthenticated, message, "", http.StatusUnauthorized)
}

func Forbidden(message string) *APIError {
	return New(KindForbidden, message, "", http.StatusForbidden)
}

func NotFound(message string, details string) *APIError {
	return New(KindNotFound, message, details, http.StatusNotFound)
}

func Conflict(message string, details string) *APIError {
	return New(KindConflict, message, details, http.StatusConflict)
}

// Internal hides the cause from clients; callers log it separately.
func Internal() *APIError {
	return New(KindInternal, "server error", "", http.StatusInternalServerError)
}

// KindOf reports the kind of err when it is an *APIError, or KindInternal.
func KindOf(err error) Kind {
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr == nil {
		return KindInternal
	}
	return apiErr.Kind
}

package services

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a domain failure so the HTTP layer can map it to a
// status code and the batch runner can decide to log-and-continue.
type ErrorKind string

const (
	KindValidation    ErrorKind = "validation"
	KindNotFound      ErrorKind = "not_found"
	KindAuthorization ErrorKind = "authorization"
	KindConflict      ErrorKind = "conflict"
	KindStore         ErrorKind = "store"
)

// DomainError is the error type every service operation returns.
type DomainError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *DomainError) Unwrap() error { return e.Err }

// ValidationError reports missing or malformed required input.
func ValidationError(message string) *DomainError {
	return &DomainError{Kind: KindValidation, Message: message}
}

// NotFoundError reports an absent referenced entity.
func NotFoundError(message string) *DomainError {
	return &DomainError{Kind: KindNotFound, Message: message}
}

// AuthorizationError reports an actor lacking visibility or role.
func AuthorizationError(message string) *DomainError {
	return &DomainError{Kind: KindAuthorization, Message: message}
}

// ConflictError guards duplicate natural-key creation races.
func ConflictError(message string) *DomainError {
	return &DomainError{Kind: KindConflict, Message: message}
}

// StoreError wraps a persistence failure. Never retried.
func StoreError(message string, err error) *DomainError {
	return &DomainError{Kind: KindStore, Message: message, Err: err}
}

// KindOf extracts the kind of a domain error; unknown errors map to store
// failures so they surface as 500s.
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindStore
}

// HTTPStatus maps a domain error to its response status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindAuthorization:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

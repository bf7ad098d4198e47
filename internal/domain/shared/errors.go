package shared

import (
	"errors"
	"fmt"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches any DomainError carrying the same code, so
// errors.Is(err, ErrNotFound) holds for a more specific NOT_FOUND message.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInvalidReference    = NewDomainError("INVALID_REFERENCE", "Referenced resource does not exist")
	ErrServiceUnavailable  = NewDomainError("SERVICE_UNAVAILABLE", "Service is not available")
	ErrInUse               = NewDomainError("IN_USE", "Resource is still referenced by other records")
)

// ReferenceError reports a foreign key that points at a missing row.
// Field is the column name (e.g. "state_id"); it is empty when the
// driver did not say which constraint failed.
type ReferenceError struct {
	Field string
	Cause error
}

func (e *ReferenceError) Error() string {
	if e.Field == "" {
		return "foreign key constraint violated"
	}
	return fmt.Sprintf("foreign key constraint violated on %s", e.Field)
}

func (e *ReferenceError) Unwrap() error {
	return e.Cause
}

// Is lets errors.Is(err, ErrInvalidReference) match reference errors.
func (e *ReferenceError) Is(target error) bool {
	return target == ErrInvalidReference
}

// AsReferenceError extracts a ReferenceError from the chain.
func AsReferenceError(err error) (*ReferenceError, bool) {
	var refErr *ReferenceError
	if errors.As(err, &refErr) {
		return refErr, true
	}
	return nil, false
}

// AsDomainError extracts a DomainError from the chain.
func AsDomainError(err error) (*DomainError, bool) {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr, true
	}
	return nil, false
}

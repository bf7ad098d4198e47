package dto

import (
	"net/http"
	"strings"
)

// Error codes returned to clients. Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	ErrCodeUnknown            = "ERR_UNKNOWN"
	ErrCodeInternal           = "ERR_INTERNAL"
	ErrCodeServiceUnavailable = "ERR_SERVICE_UNAVAILABLE"
)

// Validation error codes
const (
	ErrCodeValidation   = "ERR_VALIDATION"
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON  = "ERR_INVALID_JSON"
	ErrCodeInvalidID    = "ERR_INVALID_ID"
	ErrCodeInvalidFile  = "ERR_INVALID_FILE"
	// ErrCodeTooLarge is used when the body or an upload exceeds the limit
	ErrCodeTooLarge = "ERR_TOO_LARGE"
)

// Authentication error codes
const (
	ErrCodeUnauthorized       = "ERR_UNAUTHORIZED"
	ErrCodeForbidden          = "ERR_FORBIDDEN"
	ErrCodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"
	ErrCodeAccountDeactivated = "ERR_ACCOUNT_DEACTIVATED"
	ErrCodeTokenExpired       = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid       = "ERR_TOKEN_INVALID"
	ErrCodeTokenRevoked       = "ERR_TOKEN_REVOKED"
)

// Resource error codes
const (
	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists       = "ERR_ALREADY_EXISTS"
	ErrCodeConflict            = "ERR_CONFLICT"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
	ErrCodeDuplicateRequest    = "ERR_DUPLICATE_REQUEST"
	// ErrCodeInUse is used when a row is still referenced by other rows
	ErrCodeInUse = "ERR_IN_USE"
)

// Business rule error codes
const (
	ErrCodeInvalidState     = "ERR_INVALID_STATE"
	ErrCodeBusinessRule     = "ERR_BUSINESS_RULE"
	ErrCodeInvalidReference = "ERR_INVALID_REFERENCE"
	ErrCodeLastAdmin        = "ERR_LAST_ADMIN"
)

// Rate limiting error codes
const (
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:            http.StatusInternalServerError,
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,

	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,
	ErrCodeInvalidID:    http.StatusBadRequest,
	ErrCodeInvalidFile:  http.StatusBadRequest,
	ErrCodeTooLarge:     http.StatusRequestEntityTooLarge,

	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeAccountDeactivated: http.StatusForbidden,
	ErrCodeTokenExpired:       http.StatusUnauthorized,
	ErrCodeTokenInvalid:       http.StatusUnauthorized,
	ErrCodeTokenRevoked:       http.StatusUnauthorized,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeDuplicateRequest:    http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,
	ErrCodeInUse:               http.StatusConflict,

	ErrCodeInvalidState:     http.StatusUnprocessableEntity,
	ErrCodeBusinessRule:     http.StatusUnprocessableEntity,
	ErrCodeInvalidReference: http.StatusUnprocessableEntity,
	ErrCodeLastAdmin:        http.StatusUnprocessableEntity,

	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unmapped ERR_INVALID_* codes are input problems (400); any other
// unmapped code is a business rule violation (422).
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "ERR_INVALID_") {
		return http.StatusBadRequest
	}
	if strings.HasPrefix(code, "ERR_") {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// domainCodeMapping folds several domain codes into one client code
var domainCodeMapping = map[string]string{
	"INTERNAL_ERROR":         ErrCodeInternal,
	"PASSWORD_HASH_ERROR":    ErrCodeInternal,
	"VALIDATION_ERROR":       ErrCodeValidation,
	"USER_NOT_FOUND":         ErrCodeNotFound,
	"CANNOT_DELETE_SELF":     ErrCodeForbidden,
	"CANNOT_DEMOTE_SELF":     ErrCodeForbidden,
	"MISSING_COUNTERPARTY":   ErrCodeInvalidInput,
	"NO_ITEMS":               ErrCodeInvalidInput,
	"ORDER_NUMBER_EXHAUSTED": ErrCodeConflict,
	"FILE_TOO_LARGE":         ErrCodeTooLarge,
	"UNSUPPORTED_FILE_TYPE":  ErrCodeInvalidFile,
	"EMPTY_FILE":             ErrCodeInvalidFile,
}

// NormalizeErrorCode converts a domain error code (NOT_FOUND) into the
// client format (ERR_NOT_FOUND). Codes already in that format pass through.
func NormalizeErrorCode(code string) string {
	if code == "" {
		return ErrCodeUnknown
	}
	if strings.HasPrefix(code, "ERR_") {
		return code
	}
	if mapped, ok := domainCodeMapping[code]; ok {
		return mapped
	}
	return "ERR_" + code
}

package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"NOT_FOUND", ErrCodeNotFound},
		{"ALREADY_EXISTS", ErrCodeAlreadyExists},
		{"INVALID_REFERENCE", ErrCodeInvalidReference},
		{"TOKEN_REVOKED", ErrCodeTokenRevoked},
		{"IN_USE", ErrCodeInUse},
		{"LAST_ADMIN", ErrCodeLastAdmin},
		{"INTERNAL_ERROR", ErrCodeInternal},
		{"CANNOT_DELETE_SELF", ErrCodeForbidden},
		{"INVALID_PRICE", "ERR_INVALID_PRICE"},
		{ErrCodeValidation, ErrCodeValidation},
		{"", ErrCodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeErrorCode(tt.input))
		})
	}
}

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeInvalidCredentials, http.StatusUnauthorized},
		{ErrCodeAccountDeactivated, http.StatusForbidden},
		{ErrCodeTokenRevoked, http.StatusUnauthorized},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeInUse, http.StatusConflict},
		{ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{ErrCodeInvalidReference, http.StatusUnprocessableEntity},
		{ErrCodeServiceUnavailable, http.StatusServiceUnavailable},
		{ErrCodeTooLarge, http.StatusRequestEntityTooLarge},
		{"ERR_INVALID_DISCOUNT", http.StatusBadRequest},
		{"ERR_ALREADY_DEACTIVATED", http.StatusUnprocessableEntity},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID("NOT_FOUND", "Order not found", "req-123")

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "Order not found", resp.Error.Message)
	assert.Equal(t, "req-123", resp.Error.RequestID)
	assert.False(t, resp.Error.Timestamp.IsZero())
}

func TestNewValidationErrorResponse(t *testing.T) {
	resp := NewValidationErrorResponse("Request validation failed", "req-1", []ValidationDetail{
		{Field: "email", Message: "Invalid email format"},
	})

	body, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	errObj := decoded["error"].(map[string]any)
	assert.Equal(t, ErrCodeValidation, errObj["code"])
	details := errObj["details"].([]any)
	require.Len(t, details, 1)
	assert.Equal(t, "email", details[0].(map[string]any)["field"])
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]string{"a"}, 41, 2, 20)

	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(41), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)

	empty := NewSuccessResponseWithMeta(nil, 0, 1, 20)
	assert.Equal(t, 0, empty.Meta.TotalPages)
}

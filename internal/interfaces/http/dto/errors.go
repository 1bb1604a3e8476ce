package dto

import (
	"net/http"
	"strings"
)

// Transport-level error codes
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes
var errorCodeHTTPStatus = map[string]int{
	// Transport
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	// Shared domain sentinels
	"NOT_FOUND":             http.StatusNotFound,
	"ALREADY_EXISTS":        http.StatusConflict,
	"VALIDATION_FAILED":     http.StatusBadRequest,
	"AUTHENTICATION_FAILED": http.StatusUnauthorized,
	"REFERENTIAL_CONFLICT":  http.StatusConflict,
	"CONCURRENCY_CONFLICT":  http.StatusConflict,
	"INVALID_STATE":         http.StatusUnprocessableEntity,

	// Uniqueness conflicts
	"CODE_TAKEN":     http.StatusConflict,
	"USERNAME_TAKEN": http.StatusConflict,

	// Token errors
	"TOKEN_EXPIRED": http.StatusUnauthorized,
	"TOKEN_INVALID": http.StatusUnauthorized,

	// Business rule violations -> 422 Unprocessable Entity
	"ACCOUNT_INACTIVE":  http.StatusUnprocessableEntity,
	"CUSTOMER_INACTIVE": http.StatusUnprocessableEntity,
	"ORDER_CANCELLED":   http.StatusUnprocessableEntity,
	"ALREADY_ACTIVE":    http.StatusUnprocessableEntity,
	"ALREADY_INACTIVE":  http.StatusUnprocessableEntity,
	"ITEM_NOT_FOUND":    http.StatusNotFound,
	"DUPLICATE_PRODUCT": http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// Validation-style codes (INVALID_*) map to 400; anything unknown is a 500.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Package domain defines the core domain models for authgate.
package domain

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// DomainError represents a business domain error with a structured error code.
// The Message field is the exact client-facing error string sent on the wire.
type DomainError struct {
	Code    string // Error code (e.g., "AG-TOKN-4011")
	Message string // Client-facing message
	Details string // Optional additional details (never sent to clients)
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// GetErrorMessage extracts the client-facing message from an error.
// Non-domain errors map to the generic internal-server message so no
// internal detail leaks onto the wire.
func GetErrorMessage(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Message
	}
	return ErrInternalServer.Message
}

// Request errors (REQ).
var (
	// ErrMethodNotAllowed indicates an unsupported HTTP method for the endpoint.
	ErrMethodNotAllowed = NewDomainError("AG-REQ-4050", "Method not allowed")

	// ErrInvalidInput indicates a malformed (non-JSON) request body.
	ErrInvalidInput = NewDomainError("AG-REQ-4000", "Invalid JSON")

	// ErrEndpointNotFound indicates an unknown endpoint name.
	ErrEndpointNotFound = NewDomainError("AG-REQ-4040", "Endpoint not found")
)

// Authentication errors (AUTH).
var (
	// ErrInvalidCredentials indicates a failed login. Unknown usernames and
	// wrong passwords both map here so usernames cannot be enumerated.
	ErrInvalidCredentials = NewDomainError("AG-AUTH-4013", "Invalid credentials")
)

// Token errors (TOKN).
var (
	// ErrMissingToken indicates an absent or malformed Authorization header.
	ErrMissingToken = NewDomainError("AG-TOKN-4010", "Missing token")

	// ErrInvalidToken indicates the presented token is not in the store.
	ErrInvalidToken = NewDomainError("AG-TOKN-4011", "Invalid token")

	// ErrTokenExpired indicates the token was presented past the renewal
	// window and has been deleted.
	ErrTokenExpired = NewDomainError("AG-TOKN-4012", "Token expired")

	// ErrTokenConflict indicates a token hash collision on insert.
	ErrTokenConflict = NewDomainError("AG-TOKN-4090", "Token conflict")

	// ErrTokenVersionConflict indicates an optimistic lock conflict on renewal.
	ErrTokenVersionConflict = NewDomainError("AG-TOKN-4091", "Token version conflict")
)

// System errors (SYS).
var (
	// ErrInternalServer indicates an internal server error.
	ErrInternalServer = NewDomainError("AG-SYS-5000", "Internal server error")

	// ErrRateLimited indicates too many requests.
	ErrRateLimited = NewDomainError("AG-SYS-4290", "Too many requests")
)

// HTTPStatus maps a domain error to its HTTP status code via the numeric
// suffix convention of the error codes. Non-domain errors map to 500.
func HTTPStatus(err error) int {
	code := GetErrorCode(err)
	switch {
	case strings.HasSuffix(code, "-4050"):
		return http.StatusMethodNotAllowed
	case strings.HasSuffix(code, "-4000"):
		return http.StatusBadRequest
	case strings.HasSuffix(code, "-4040"):
		return http.StatusNotFound
	case strings.HasSuffix(code, "-4010"), strings.HasSuffix(code, "-4011"),
		strings.HasSuffix(code, "-4012"), strings.HasSuffix(code, "-4013"):
		return http.StatusUnauthorized
	case strings.HasSuffix(code, "-4290"):
		return http.StatusTooManyRequests
	case strings.HasSuffix(code, "-4090"), strings.HasSuffix(code, "-4091"):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

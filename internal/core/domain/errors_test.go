// Package domain defines the core domain models for authgate.
package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestDomainError_Is(t *testing.T) {
	err := ErrInvalidToken.WithDetails("token unknown")

	if !errors.Is(err, ErrInvalidToken) {
		t.Error("errors.Is failed for same code with details")
	}
	if errors.Is(err, ErrTokenExpired) {
		t.Error("errors.Is matched a different code")
	}
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("underlying")
	err := ErrInternalServer.WithCause(cause)

	if !errors.Is(err, cause) {
		t.Error("wrapped cause not reachable via errors.Is")
	}
}

func TestGetErrorMessage(t *testing.T) {
	if got := GetErrorMessage(ErrInvalidCredentials); got != "Invalid credentials" {
		t.Errorf("GetErrorMessage = %q, want %q", got, "Invalid credentials")
	}

	// Non-domain errors must not leak onto the wire.
	if got := GetErrorMessage(fmt.Errorf("pgx: connection refused")); got != ErrInternalServer.Message {
		t.Errorf("GetErrorMessage leaked internal error: %q", got)
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ErrMethodNotAllowed, http.StatusMethodNotAllowed},
		{ErrInvalidInput, http.StatusBadRequest},
		{ErrEndpointNotFound, http.StatusNotFound},
		{ErrInvalidCredentials, http.StatusUnauthorized},
		{ErrMissingToken, http.StatusUnauthorized},
		{ErrInvalidToken, http.StatusUnauthorized},
		{ErrTokenExpired, http.StatusUnauthorized},
		{ErrRateLimited, http.StatusTooManyRequests},
		{ErrTokenConflict, http.StatusConflict},
		{ErrInternalServer, http.StatusInternalServerError},
		{fmt.Errorf("plain error"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := HTTPStatus(tt.err); got != tt.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestWireMessages(t *testing.T) {
	// These messages are part of the external contract.
	want := map[*DomainError]string{
		ErrInvalidInput:       "Invalid JSON",
		ErrInvalidCredentials: "Invalid credentials",
		ErrMissingToken:       "Missing token",
		ErrInvalidToken:       "Invalid token",
		ErrTokenExpired:       "Token expired",
		ErrEndpointNotFound:   "Endpoint not found",
	}

	for err, msg := range want {
		if err.Message != msg {
			t.Errorf("message for %s = %q, want %q", err.Code, err.Message, msg)
		}
	}
}

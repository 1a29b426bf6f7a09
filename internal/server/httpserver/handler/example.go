// Package handler provides HTTP request handlers for authgate.
package handler

import (
	"fmt"
	"net/http"

	"github.com/authgate-io/authgate/internal/core/service"
)

// handleExampleGet greets the authenticated caller.
//
// GET /?endpoint=example
func (h *Handler) handleExampleGet(w http.ResponseWriter, r *http.Request, auth *service.ValidateResult) {
	h.writeJSON(w, r, http.StatusOK, ExampleResponse{
		Message: fmt.Sprintf("Hello, %s!", auth.Username),
		User:    auth.Username,
		Roles:   auth.Roles,
	})
}

// handleExamplePost echoes the request body back to the caller.
//
// POST /?endpoint=example
func (h *Handler) handleExamplePost(w http.ResponseWriter, r *http.Request, auth *service.ValidateResult) {
	var body map[string]any
	if err := h.decodeBody(r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, ExampleResponse{
		Message: fmt.Sprintf("Hello, %s!", auth.Username),
		User:    auth.Username,
		Roles:   auth.Roles,
		Echo:    body,
	})
}

// Package handler provides HTTP request handlers for authgate.
package handler

import (
	"net/http"
)

// handleLogin verifies credentials and issues a bearer token.
//
// POST /?endpoint=login
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := h.decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	res, err := h.authSvc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, LoginResponse{
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
		Roles:     res.Roles,
	})
}

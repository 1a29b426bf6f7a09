// Package handler provides HTTP request handlers for authgate.
package handler

import (
	"net/http"

	"github.com/authgate-io/authgate/internal/infra/buildinfo"
)

// Health reports process liveness.
//
// GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: buildinfo.Version,
	})
}

// Ready reports whether the server can authenticate requests.
//
// GET /ready
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, HealthResponse{Status: "ready"})
}

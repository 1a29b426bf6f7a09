// Package handler provides HTTP request handlers for authgate.
package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/authgate-io/authgate/internal/core/domain"
	"github.com/authgate-io/authgate/internal/core/service"
	"github.com/authgate-io/authgate/internal/telemetry/logger"
)

// endpointParam is the query parameter selecting the API operation.
const endpointParam = "endpoint"

// route identifies one operation in the dispatch table.
type route struct {
	endpoint string
	method   string
}

// protectedHandler serves an authenticated request. The validation
// result carries the caller's identity and role set.
type protectedHandler func(w http.ResponseWriter, r *http.Request, auth *service.ValidateResult)

// Handler dispatches API requests by endpoint query parameter.
type Handler struct {
	authSvc      *service.AuthService
	log          logger.Logger
	maxBodyBytes int64

	routes    map[route]protectedHandler
	endpoints map[string]bool
}

// New creates a new Handler.
func New(authSvc *service.AuthService, log logger.Logger, maxBodyBytes int64) *Handler {
	if log == nil {
		log = logger.Default()
	}

	h := &Handler{
		authSvc:      authSvc,
		log:          log,
		maxBodyBytes: maxBodyBytes,
	}
	h.registerRoutes()
	return h
}

// registerRoutes builds the dispatch table. Login is absent on purpose:
// it is the only unauthenticated endpoint and is dispatched before
// token validation.
func (h *Handler) registerRoutes() {
	h.routes = map[route]protectedHandler{
		{"example", http.MethodGet}:  h.handleExampleGet,
		{"example", http.MethodPost}: h.handleExamplePost,
	}

	h.endpoints = map[string]bool{"login": true}
	for r := range h.routes {
		h.endpoints[r.endpoint] = true
	}
}

// ServeHTTP implements http.Handler.
//
// Dispatch order: login short-circuits before authentication; every
// other request is authenticated first, so an unknown endpoint only
// becomes a 404 for callers holding a usable token.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.maxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}

	endpoint := r.URL.Query().Get(endpointParam)

	if endpoint == "login" {
		if r.Method != http.MethodPost {
			h.writeError(w, r, domain.ErrMethodNotAllowed)
			return
		}
		h.handleLogin(w, r)
		return
	}

	auth, err := h.authSvc.Validate(r.Context(), r.Header.Get("Authorization"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if auth.Renewed {
		w.Header().Set("X-Token-Renewed", "true")
		w.Header().Set("X-Token-Expires-At", strconv.FormatInt(auth.ExpiresAt, 10))
	}

	if !h.endpoints[endpoint] {
		h.writeError(w, r, domain.ErrEndpointNotFound)
		return
	}
	handle, ok := h.routes[route{endpoint, r.Method}]
	if !ok {
		h.writeError(w, r, domain.ErrMethodNotAllowed)
		return
	}

	handle(w, r, auth)
}

// decodeBody decodes a JSON request body into target.
// An empty body is treated as an empty JSON object.
func (h *Handler) decodeBody(r *http.Request, target any) error {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return domain.ErrInvalidInput.WithCause(err)
	}
	if len(data) == 0 {
		data = []byte("{}")
	}
	if err := json.Unmarshal(data, target); err != nil {
		return domain.ErrInvalidInput.WithCause(err)
	}
	return nil
}

// writeJSON writes a pretty-printed JSON response.
func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		h.log.WithContext(r.Context()).Error("failed to encode response", "error", err)
	}
}

// writeError writes an error response. The body is always a single
// {"error": message} object; internal details never reach the client.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := domain.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.log.WithContext(r.Context()).Error("request failed", "error", err)
	}

	if code := domain.GetErrorCode(err); code != "" {
		w.Header().Set("X-Error-Code", code)
	}
	h.writeJSON(w, r, status, ErrorResponse{Error: domain.GetErrorMessage(err)})
}

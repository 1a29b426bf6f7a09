// Package handler provides HTTP request handlers for authgate.
package handler

// LoginRequest is the request body for the login endpoint.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the response body for a successful login.
type LoginResponse struct {
	// Token is the plaintext bearer token. It is shown exactly once;
	// the server keeps only a hash.
	Token string `json:"token"`

	// ExpiresAt is the token expiry as a Unix timestamp in seconds.
	ExpiresAt int64 `json:"expiresAt"`

	// Roles is the role set bound to the token.
	Roles []string `json:"roles"`
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ExampleResponse is the response body for the example endpoint.
type ExampleResponse struct {
	Message string   `json:"message"`
	User    string   `json:"user"`
	Roles   []string `json:"roles"`

	// Echo carries back the request body for POST calls.
	Echo map[string]any `json:"echo,omitempty"`
}

// HealthResponse is the response body for health and readiness probes.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

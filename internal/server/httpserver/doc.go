// Package httpserver provides the HTTP server for authgate.
//
// It uses the Go standard library net/http for implementation. All API
// operations are dispatched through a single path using the endpoint
// query parameter; /health, /ready and /metrics are served on their
// own paths.
package httpserver

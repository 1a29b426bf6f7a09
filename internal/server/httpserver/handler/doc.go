// Package handler provides HTTP request handlers for authgate.
//
// All API operations share a single path and are selected with the
// endpoint query parameter (?endpoint=login, ?endpoint=example). The
// login endpoint is the only unauthenticated one; every other endpoint
// requires a bearer token and renews it transparently when it has
// expired inside the renewal window.
package handler

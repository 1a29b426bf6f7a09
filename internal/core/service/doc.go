// Package service provides domain services for authgate.
//
// AuthService handles credential verification, token issuance, bearer
// token validation with in-window renewal, and login rate limiting.
package service

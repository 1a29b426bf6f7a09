// Package config provides server configuration for authgate.
//
// This package defines the server configuration structure and validation:
//
//   - spec.go: ServerConfig struct definition
//   - default.go: Default configuration values
//   - verify.go: Business validation (durations, addresses, credentials)
//   - sanitize.go: Log sanitization (hide plaintext passwords)
//
// Configuration is loaded via internal/infra/confloader and supports
// files and environment variables.
package config

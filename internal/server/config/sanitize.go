// Package config defines the server configuration structure.
package config

import "strings"

// Sanitize returns a copy of the config with sensitive fields masked.
//
// This is used for logging configuration without exposing secrets.
func Sanitize(cfg *ServerConfig) *ServerConfig {
	sanitized := *cfg

	if len(cfg.Auth.Credentials) > 0 {
		creds := make([]CredentialConfig, len(cfg.Auth.Credentials))
		copy(creds, cfg.Auth.Credentials)
		for i := range creds {
			if creds[i].Password != "" {
				creds[i].Password = maskSecret(creds[i].Password)
			}
			if creds[i].PasswordHash != "" {
				creds[i].PasswordHash = "****"
			}
		}
		sanitized.Auth.Credentials = creds
	}

	return &sanitized
}

// maskSecret masks a secret value for safe logging.
func maskSecret(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}

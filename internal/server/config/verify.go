// Package config defines the server configuration structure.
package config

import (
	"errors"
	"fmt"
	"net"
)

// Verify validates the configuration.
func Verify(cfg *ServerConfig) error {
	if err := verifyServer(&cfg.Server); err != nil {
		return err
	}
	if err := verifyAuth(&cfg.Auth); err != nil {
		return err
	}
	return nil
}

func verifyServer(cfg *ServerSection) error {
	if cfg.HTTP.Addr == "" {
		return errors.New("server.http.addr is required")
	}
	if _, _, err := net.SplitHostPort(cfg.HTTP.Addr); err != nil {
		return fmt.Errorf("server.http.addr %q is not host:port: %w", cfg.HTTP.Addr, err)
	}
	if cfg.HTTP.MaxBodyBytes < 0 {
		return errors.New("server.http.max_body_bytes must not be negative")
	}
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.Rate <= 0 {
			return errors.New("server.rate_limit.rate must be positive when enabled")
		}
		if cfg.RateLimit.Burst < 1 {
			return errors.New("server.rate_limit.burst must be at least 1 when enabled")
		}
	}
	return nil
}

func verifyAuth(cfg *AuthSection) error {
	if cfg.TokenTTL <= 0 {
		return errors.New("auth.token_ttl must be positive")
	}
	if cfg.RenewWindow < cfg.TokenTTL {
		return errors.New("auth.renew_window must be at least auth.token_ttl")
	}
	if cfg.MaxRenewals < 0 {
		return errors.New("auth.max_renewals must not be negative")
	}
	if len(cfg.Credentials) == 0 {
		return errors.New("auth.credentials must list at least one user")
	}

	seen := make(map[string]bool, len(cfg.Credentials))
	for i, c := range cfg.Credentials {
		if c.Username == "" {
			return fmt.Errorf("auth.credentials[%d].username is required", i)
		}
		if seen[c.Username] {
			return fmt.Errorf("auth.credentials: duplicate username %q", c.Username)
		}
		seen[c.Username] = true

		if c.Password == "" && c.PasswordHash == "" {
			return fmt.Errorf("auth.credentials[%d]: password or password_hash is required", i)
		}
		if c.Password != "" && c.PasswordHash != "" {
			return fmt.Errorf("auth.credentials[%d]: password and password_hash are mutually exclusive", i)
		}
	}
	return nil
}

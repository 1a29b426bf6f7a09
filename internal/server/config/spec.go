// Package config defines the server configuration structure.
package config

import "time"

// ServerConfig is the root configuration for authgate-server.
type ServerConfig struct {
	Server ServerSection `koanf:"server"`
	Auth   AuthSection   `koanf:"auth"`
	Log    LogSection    `koanf:"log"`
}

// ServerSection configures server endpoints and request handling.
type ServerSection struct {
	HTTP      HTTPConfig      `koanf:"http"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`

	// EnableAudit turns on per-request audit logging.
	EnableAudit bool `koanf:"enable_audit"`
}

// HTTPConfig configures the HTTP server.
type HTTPConfig struct {
	Addr            string        `koanf:"addr"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// MaxBodyBytes caps the size of accepted request bodies.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`
}

// RateLimitConfig configures per-client-IP request throttling.
type RateLimitConfig struct {
	Enabled bool    `koanf:"enabled"`
	Rate    float64 `koanf:"rate"`
	Burst   int     `koanf:"burst"`
}

// AuthSection configures token issuance and renewal.
type AuthSection struct {
	// TokenTTL is the validity period of issued tokens.
	TokenTTL time.Duration `koanf:"token_ttl"`

	// RenewWindow is the renewal window measured from a token's
	// current issuance time. Must be at least TokenTTL.
	RenewWindow time.Duration `koanf:"renew_window"`

	// MaxRenewals caps renewals per token. Zero means unlimited.
	MaxRenewals int `koanf:"max_renewals"`

	// LoginRate is the sustained per-username login rate (per second).
	LoginRate float64 `koanf:"login_rate"`

	// LoginBurst is the per-username login burst.
	LoginBurst int `koanf:"login_burst"`

	// SweepInterval is how often stale token records are reclaimed.
	// Zero disables the background sweeper.
	SweepInterval time.Duration `koanf:"sweep_interval"`

	// Credentials is the static user database.
	Credentials []CredentialConfig `koanf:"credentials"`
}

// CredentialConfig is one static user record.
// Exactly one of Password and PasswordHash must be set; plaintext
// passwords are hashed at startup and never kept in memory.
type CredentialConfig struct {
	Username     string   `koanf:"username"`
	Password     string   `koanf:"password"`
	PasswordHash string   `koanf:"password_hash"`
	Roles        []string `koanf:"roles"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

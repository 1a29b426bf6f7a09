// Package config defines the server configuration structure.
package config

import "time"

// Default configuration values.
const (
	DefaultHTTPAddr        = "127.0.0.1:8080"
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 15 * time.Second
	DefaultMaxBodyBytes    = 1 << 20 // 1 MiB

	DefaultTokenTTL      = 600 * time.Second
	DefaultRenewWindow   = 1800 * time.Second
	DefaultLoginRate     = 1.0
	DefaultLoginBurst    = 5
	DefaultSweepInterval = 5 * time.Minute

	DefaultRequestRate  = 50.0
	DefaultRequestBurst = 100

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			HTTP: HTTPConfig{
				Addr:            DefaultHTTPAddr,
				ReadTimeout:     DefaultReadTimeout,
				WriteTimeout:    DefaultWriteTimeout,
				IdleTimeout:     DefaultIdleTimeout,
				ShutdownTimeout: DefaultShutdownTimeout,
				MaxBodyBytes:    DefaultMaxBodyBytes,
			},
			RateLimit: RateLimitConfig{
				Enabled: false,
				Rate:    DefaultRequestRate,
				Burst:   DefaultRequestBurst,
			},
		},
		Auth: AuthSection{
			TokenTTL:      DefaultTokenTTL,
			RenewWindow:   DefaultRenewWindow,
			LoginRate:     DefaultLoginRate,
			LoginBurst:    DefaultLoginBurst,
			SweepInterval: DefaultSweepInterval,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

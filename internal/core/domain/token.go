// Package domain defines the core domain models for authgate.
package domain

import (
	"encoding/base64"
	"strings"
	"time"

	"github.com/authgate-io/authgate/pkg/token"
)

// Token format constants.
const (
	// TokenPrefix is the prefix for bearer tokens (sensitive, uses underscore).
	TokenPrefix = "agtk_"

	// TokenHashPrefix is the prefix for token hashes (sensitive, uses underscore).
	TokenHashPrefix = "agth_"

	// TokenBytesLength is the number of random bytes for token generation.
	TokenBytesLength = 32

	// TokenBodyLength is the Base64 RawURL encoded length (32 bytes -> 43 chars).
	TokenBodyLength = 43

	// TokenLength is the total token length (prefix + body).
	TokenLength = 5 + TokenBodyLength

	// TokenHashLength is the total token hash length (prefix + hex SHA-256).
	TokenHashLength = 5 + 64
)

// Lifecycle defaults.
const (
	// DefaultTokenTTL is the lifetime of a freshly issued or renewed token.
	DefaultTokenTTL = 600 * time.Second

	// DefaultRenewWindow is the grace period, measured from IssuedAt, during
	// which a token presented past its expiry is renewed instead of rejected.
	DefaultRenewWindow = 1800 * time.Second
)

// Token represents an issued bearer token.
// The raw token value is never stored; only its hash is kept.
type Token struct {
	// Hash is the SHA-256 hash of the raw token (format: agth_...).
	Hash string `json:"hash"`

	// Username identifies the user the token was issued to.
	Username string `json:"username"`

	// Roles is the role set snapshot copied at issuance. It is never
	// re-derived from the credential store; a later role change does not
	// affect an already-issued token.
	Roles []string `json:"roles"`

	// IssuedAt is the issue timestamp (Unix seconds). Renewal reassigns it.
	IssuedAt int64 `json:"issued_at"`

	// ExpiresAt is the expiry timestamp (Unix seconds).
	// Invariant: ExpiresAt == IssuedAt + TTL after issuance and renewal.
	ExpiresAt int64 `json:"expires_at"`

	// Renewals counts how many times this token has been renewed.
	Renewals int `json:"renewals"`

	// Version is the optimistic lock version number.
	Version uint64 `json:"version"`
}

// GenerateToken generates a cryptographically secure bearer token.
// Returns the plaintext token (agtk_...) and its hash (agth_...).
//
// The plaintext token is only returned to the client once at login.
// Never store or log the plaintext token.
func GenerateToken() (plaintext string, hash string, err error) {
	body, err := token.GenerateWithLength(TokenBytesLength)
	if err != nil {
		return "", "", ErrInternalServer.WithCause(err)
	}

	plaintext = TokenPrefix + body
	return plaintext, HashToken(plaintext), nil
}

// HashToken computes the SHA-256 hash of a token.
// Returns the hash in format: agth_{hex_sha256}.
func HashToken(plaintext string) string {
	return TokenHashPrefix + token.Hash(plaintext)
}

// ValidateTokenFormat checks if a string has valid token format:
// the agtk_ prefix followed by 43 characters of Base64 RawURL data.
func ValidateTokenFormat(token string) bool {
	if len(token) != TokenLength {
		return false
	}
	if !strings.HasPrefix(token, TokenPrefix) {
		return false
	}
	_, err := base64.RawURLEncoding.DecodeString(token[len(TokenPrefix):])
	return err == nil
}

// NewToken issues a token for the given user, snapshotting the role set.
// Returns the plaintext token and the record to store.
func NewToken(username string, roles []string, now time.Time, ttl time.Duration) (string, *Token, error) {
	plaintext, hash, err := GenerateToken()
	if err != nil {
		return "", nil, err
	}

	issued := now.Unix()
	return plaintext, &Token{
		Hash:      hash,
		Username:  username,
		Roles:     cloneRoles(roles),
		IssuedAt:  issued,
		ExpiresAt: issued + int64(ttl/time.Second),
		Version:   1,
	}, nil
}

// Active reports whether the token is valid as-is at the given time.
func (t *Token) Active(now time.Time) bool {
	return now.Unix() <= t.ExpiresAt
}

// Renewable reports whether a token presented past its expiry is still
// within the renewal window. The window is measured from the current
// IssuedAt value, which renewal reassigns, so periodic use keeps a token
// renewable indefinitely.
func (t *Token) Renewable(now time.Time, window time.Duration) bool {
	return now.Unix() <= t.IssuedAt+int64(window/time.Second)
}

// Expired reports whether the token is past both its expiry and the
// renewal window, meaning the record should be removed.
func (t *Token) Expired(now time.Time, window time.Duration) bool {
	return !t.Active(now) && !t.Renewable(now, window)
}

// Renew advances the token lifecycle: IssuedAt becomes now and ExpiresAt
// becomes now + ttl, preserving the ExpiresAt == IssuedAt + TTL invariant.
func (t *Token) Renew(now time.Time, ttl time.Duration) {
	t.IssuedAt = now.Unix()
	t.ExpiresAt = t.IssuedAt + int64(ttl/time.Second)
	t.Renewals++
}

// Clone returns a deep copy of the token.
func (t *Token) Clone() *Token {
	clone := *t
	clone.Roles = cloneRoles(t.Roles)
	return &clone
}

// GetVersion returns the current version for optimistic locking.
// Implements the Versioned interface from pkg/cmap.
func (t *Token) GetVersion() uint64 {
	return t.Version
}

// SetVersion sets the version number for optimistic locking.
// Implements the Versioned interface from pkg/cmap.
func (t *Token) SetVersion(v uint64) {
	t.Version = v
}

// MaskToken masks a token for safe logging.
// Example: agtk_ABC...xyz
func MaskToken(token string) string {
	if len(token) < 10 {
		return "***REDACTED***"
	}
	if strings.HasPrefix(token, TokenPrefix) || strings.HasPrefix(token, TokenHashPrefix) {
		prefix := token[:5]
		body := token[5:]
		if len(body) > 6 {
			return prefix + body[:3] + "..." + body[len(body)-3:]
		}
		return prefix + "***"
	}
	return "***REDACTED***"
}

func cloneRoles(roles []string) []string {
	if roles == nil {
		return nil
	}
	out := make([]string, len(roles))
	copy(out, roles)
	return out
}

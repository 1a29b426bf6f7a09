// Package token provides token generation and validation utilities.
//
// This package implements cryptographically secure token generation
// and hashing for the authgate bearer-token format.
//
// Token Format:
//
//   - Prefix: agtk_ (5 characters)
//   - Body: 43 characters of Base64 RawURL encoded random bytes
//   - Total: 48 characters
//
// Security:
//
//   - Uses crypto/rand for CSPRNG
//   - SHA-256 hashing with constant-time comparison
//   - Tokens are never stored, only hashes
package token

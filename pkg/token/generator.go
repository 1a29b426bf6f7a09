// Package token provides token generation and hashing utilities.
package token

import (
	"crypto/rand"
	"encoding/base64"
)

// DefaultLength is the default token length in bytes.
const DefaultLength = 32

// MinLength is the minimum acceptable token length in bytes.
// Anything shorter makes brute-force guessing feasible.
const MinLength = 16

// Generate generates a cryptographically secure random token body.
//
// The returned value is Base64 RawURL encoded for safe transport in
// headers and URLs.
func Generate() (string, error) {
	return GenerateWithLength(DefaultLength)
}

// GenerateWithLength generates a token body with the specified byte length.
// Lengths below MinLength are raised to MinLength.
func GenerateWithLength(length int) (string, error) {
	if length < MinLength {
		length = MinLength
	}
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

// GenerateBytes generates random bytes.
func GenerateBytes(length int) ([]byte, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return nil, err
	}
	return bytes, nil
}

// Package domain defines the core domain models for authgate.
package domain

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters for password hashing.
// Hash format: $argon2id$v=19$m=16384,t=2,p=2$<salt>$<hash>
const (
	argonMemory      = 16384
	argonTime        = 2
	argonParallelism = 2
	argonSaltLength  = 16
	argonKeyLength   = 32
)

// Credential is a static user record. Immutable for the process lifetime,
// loaded at startup.
type Credential struct {
	// Username is the unique lookup key.
	Username string `json:"username"`

	// PasswordHash is the argon2id encoded password hash.
	PasswordHash string `json:"-"`

	// Roles is the role set granted to tokens issued for this user.
	Roles []string `json:"roles"`
}

// RoleSnapshot returns a copy of the role set, safe to embed in a token.
func (c *Credential) RoleSnapshot() []string {
	return cloneRoles(c.Roles)
}

// CredentialStore is a read-only username -> credential mapping.
type CredentialStore struct {
	users map[string]*Credential
}

// NewCredentialStore builds a store from the given records.
// Later records with a duplicate username replace earlier ones.
func NewCredentialStore(creds []*Credential) *CredentialStore {
	users := make(map[string]*Credential, len(creds))
	for _, c := range creds {
		users[c.Username] = c
	}
	return &CredentialStore{users: users}
}

// Lookup returns the credential for a username.
func (s *CredentialStore) Lookup(username string) (*Credential, bool) {
	c, ok := s.users[username]
	return c, ok
}

// Len returns the number of credentials in the store.
func (s *CredentialStore) Len() int {
	return len(s.users)
}

// HashPassword hashes a password with argon2id and a random salt.
func HashPassword(password string) (string, error) {
	salt := make([]byte, argonSaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", ErrInternalServer.WithCause(err)
	}

	key := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonParallelism, argonKeyLength)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonParallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// VerifyPassword verifies a password against an argon2id encoded hash.
// Uses constant-time comparison to prevent timing attacks.
func VerifyPassword(password, encoded string) bool {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return false
	}
	if parts[1] != "argon2id" {
		return false
	}

	var memory, timeCost uint32
	var parallelism uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &timeCost, &parallelism); err != nil {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false
	}

	computed := argon2.IDKey([]byte(password), salt, timeCost, memory, parallelism, uint32(len(expected)))
	return subtle.ConstantTimeCompare(computed, expected) == 1
}

// Package domain defines the core domain models for authgate.
package domain

import (
	"strings"
	"testing"
)

func TestHashPassword_Format(t *testing.T) {
	encoded, err := HashPassword("password1")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if !strings.HasPrefix(encoded, "$argon2id$") {
		t.Errorf("hash = %s, want $argon2id$ prefix", encoded)
	}
	if parts := strings.Split(encoded, "$"); len(parts) != 6 {
		t.Errorf("hash has %d segments, want 6", len(parts))
	}
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	h1, err := HashPassword("password1")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	h2, err := HashPassword("password1")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password are identical; salt is not random")
	}
}

func TestVerifyPassword(t *testing.T) {
	encoded, err := HashPassword("password1")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	tests := []struct {
		name     string
		password string
		encoded  string
		want     bool
	}{
		{"correct password", "password1", encoded, true},
		{"wrong password", "password2", encoded, false},
		{"empty password", "", encoded, false},
		{"malformed hash", "password1", "not-a-hash", false},
		{"wrong algorithm", "password1", "$argon2i$v=19$m=16384,t=2,p=2$c2FsdA$aGFzaA", false},
		{"bad salt encoding", "password1", "$argon2id$v=19$m=16384,t=2,p=2$!!!$aGFzaA", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VerifyPassword(tt.password, tt.encoded); got != tt.want {
				t.Errorf("VerifyPassword() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCredentialStore(t *testing.T) {
	hash, err := HashPassword("password1")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	store := NewCredentialStore([]*Credential{
		{Username: "alice", PasswordHash: hash, Roles: []string{"admin", "editor"}},
		{Username: "bob", PasswordHash: hash, Roles: []string{"viewer"}},
	})

	if store.Len() != 2 {
		t.Errorf("Len() = %d, want 2", store.Len())
	}

	alice, ok := store.Lookup("alice")
	if !ok {
		t.Fatal("Lookup(alice) = false")
	}
	if len(alice.Roles) != 2 || alice.Roles[0] != "admin" {
		t.Errorf("alice roles = %v, want [admin editor]", alice.Roles)
	}

	if _, ok := store.Lookup("mallory"); ok {
		t.Error("Lookup(mallory) = true for unknown user")
	}
}

func TestCredential_RoleSnapshot(t *testing.T) {
	c := &Credential{Username: "alice", Roles: []string{"admin"}}

	snap := c.RoleSnapshot()
	snap[0] = "viewer"

	if c.Roles[0] != "admin" {
		t.Error("RoleSnapshot shares backing array with credential")
	}
}

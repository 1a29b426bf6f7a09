// Package connection provides server communication for authgate-cli.
package connection

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// CachedToken is the on-disk record of the last successful login.
type CachedToken struct {
	Server    string   `json:"server"`
	Username  string   `json:"username"`
	Token     string   `json:"token"`
	ExpiresAt int64    `json:"expiresAt"`
	Roles     []string `json:"roles"`
}

// ErrNoCachedToken is returned when no login has been cached.
var ErrNoCachedToken = errors.New("not logged in, run login first")

// DefaultCachePath returns the default token cache location.
func DefaultCachePath() (string, error) {
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(dir, ".authgate", "token.json"), nil
}

// LoadToken reads the cached token from path.
func LoadToken(path string) (*CachedToken, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoCachedToken
		}
		return nil, fmt.Errorf("read token cache: %w", err)
	}

	var tok CachedToken
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("parse token cache: %w", err)
	}
	if tok.Token == "" {
		return nil, ErrNoCachedToken
	}
	return &tok, nil
}

// SaveToken writes the token cache to path with owner-only permissions.
func SaveToken(path string, tok *CachedToken) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal token cache: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write token cache: %w", err)
	}
	return nil
}

// ClearToken removes the token cache. Missing files are not an error.
func ClearToken(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token cache: %w", err)
	}
	return nil
}

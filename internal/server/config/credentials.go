// Package config defines the server configuration structure.
package config

import (
	"fmt"

	"github.com/authgate-io/authgate/internal/core/domain"
)

// BuildCredentials converts the configured user records into domain
// credentials, hashing any plaintext passwords. Call after Verify.
func BuildCredentials(cfg *AuthSection) ([]*domain.Credential, error) {
	creds := make([]*domain.Credential, 0, len(cfg.Credentials))
	for _, c := range cfg.Credentials {
		hash := c.PasswordHash
		if hash == "" {
			var err error
			hash, err = domain.HashPassword(c.Password)
			if err != nil {
				return nil, fmt.Errorf("hash password for %q: %w", c.Username, err)
			}
		}
		creds = append(creds, &domain.Credential{
			Username:     c.Username,
			PasswordHash: hash,
			Roles:        append([]string(nil), c.Roles...),
		})
	}
	return creds, nil
}

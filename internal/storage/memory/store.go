// Package memory provides in-memory token storage for authgate.
package memory

import (
	"context"
	"time"

	"github.com/authgate-io/authgate/internal/core/domain"
	"github.com/authgate-io/authgate/pkg/cmap"
)

// Store provides in-memory token storage.
//
// Records are keyed by token hash (agth_...), never by the plaintext
// token. Expired records are removed lazily when presented past the
// renewal window; DeleteExpired offers an optional sweep for callers
// that want proactive reclamation.
type Store struct {
	tokens *cmap.Map[string, *domain.Token]
}

// New creates a new in-memory token store.
func New() *Store {
	return &Store{
		tokens: cmap.New[string, *domain.Token](),
	}
}

// Get retrieves a token record by hash.
// Returns a clone to prevent external modification.
func (s *Store) Get(_ context.Context, hash string) (*domain.Token, error) {
	tok, ok := s.tokens.Get(hash)
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	return tok.Clone(), nil
}

// Create stores a new token record.
func (s *Store) Create(_ context.Context, tok *domain.Token) error {
	if !s.tokens.SetIfAbsent(tok.Hash, tok.Clone()) {
		return domain.ErrTokenConflict
	}
	return nil
}

// Update replaces an existing record with optimistic locking. The stored
// version must match expectedVersion; on success the caller's record is
// bumped to the new version.
func (s *Store) Update(_ context.Context, tok *domain.Token, expectedVersion uint64) error {
	clone := tok.Clone()
	if !cmap.CompareAndSwap(s.tokens, tok.Hash, expectedVersion, clone) {
		if !s.tokens.Has(tok.Hash) {
			return domain.ErrInvalidToken
		}
		return domain.ErrTokenVersionConflict
	}
	tok.Version = clone.Version
	return nil
}

// Delete removes a token record by hash.
func (s *Store) Delete(_ context.Context, hash string) error {
	if _, ok := s.tokens.Pop(hash); !ok {
		return domain.ErrInvalidToken
	}
	return nil
}

// Count returns the number of records currently held.
func (s *Store) Count() int {
	return s.tokens.Count()
}

// DeleteExpired removes every record whose renewal window has closed at
// the given time and returns the number removed. Records still inside
// the window are kept since a client presenting one would renew it.
func (s *Store) DeleteExpired(_ context.Context, now time.Time, window time.Duration) int {
	var stale []string
	s.tokens.Range(func(hash string, tok *domain.Token) bool {
		if tok.Expired(now, window) {
			stale = append(stale, hash)
		}
		return true
	})

	removed := 0
	for _, hash := range stale {
		// Re-check under the shard lock; a concurrent renewal wins.
		if s.tokens.DeleteIf(hash, func(tok *domain.Token) bool {
			return tok.Expired(now, window)
		}) {
			removed++
		}
	}
	return removed
}

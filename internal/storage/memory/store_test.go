// Package memory provides in-memory token storage for authgate.
package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/authgate-io/authgate/internal/core/domain"
)

func newTestToken(t *testing.T, issued time.Time) *domain.Token {
	t.Helper()
	_, tok, err := domain.NewToken("alice", []string{"admin"}, issued, domain.DefaultTokenTTL)
	if err != nil {
		t.Fatalf("NewToken failed: %v", err)
	}
	return tok
}

func TestStore_CreateGet(t *testing.T) {
	ctx := context.Background()
	store := New()
	tok := newTestToken(t, time.Now())

	if err := store.Create(ctx, tok); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.Get(ctx, tok.Hash)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Username != "alice" {
		t.Errorf("Username = %s, want alice", got.Username)
	}

	// Returned record is a clone.
	got.Username = "mallory"
	again, _ := store.Get(ctx, tok.Hash)
	if again.Username != "alice" {
		t.Error("Get returned a shared record")
	}
}

func TestStore_Create_Conflict(t *testing.T) {
	ctx := context.Background()
	store := New()
	tok := newTestToken(t, time.Now())

	if err := store.Create(ctx, tok); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := store.Create(ctx, tok); !errors.Is(err, domain.ErrTokenConflict) {
		t.Errorf("duplicate Create error = %v, want ErrTokenConflict", err)
	}
}

func TestStore_Get_Unknown(t *testing.T) {
	store := New()
	if _, err := store.Get(context.Background(), "agth_missing"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("Get(unknown) error = %v, want ErrInvalidToken", err)
	}
}

func TestStore_Update_OptimisticLock(t *testing.T) {
	ctx := context.Background()
	store := New()
	tok := newTestToken(t, time.Now())

	if err := store.Create(ctx, tok); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	renewed := tok.Clone()
	renewed.Renew(time.Now().Add(700*time.Second), domain.DefaultTokenTTL)

	if err := store.Update(ctx, renewed, 1); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if renewed.Version != 2 {
		t.Errorf("Version after update = %d, want 2", renewed.Version)
	}

	// Stale version must conflict.
	stale := tok.Clone()
	if err := store.Update(ctx, stale, 1); !errors.Is(err, domain.ErrTokenVersionConflict) {
		t.Errorf("stale Update error = %v, want ErrTokenVersionConflict", err)
	}

	// Unknown hash maps to invalid token, not conflict.
	missing := tok.Clone()
	missing.Hash = "agth_missing"
	if err := store.Update(ctx, missing, 1); !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("Update(unknown) error = %v, want ErrInvalidToken", err)
	}
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := New()
	tok := newTestToken(t, time.Now())

	if err := store.Create(ctx, tok); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := store.Delete(ctx, tok.Hash); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, tok.Hash); !errors.Is(err, domain.ErrInvalidToken) {
		t.Error("record still present after Delete")
	}
	if err := store.Delete(ctx, tok.Hash); !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("second Delete error = %v, want ErrInvalidToken", err)
	}
}

func TestStore_DeleteExpired(t *testing.T) {
	ctx := context.Background()
	store := New()
	now := time.Unix(1_700_000_000, 0)

	fresh := newTestToken(t, now)
	inWindow := newTestToken(t, now.Add(-700*time.Second))  // expired, renewable
	stale := newTestToken(t, now.Add(-2000*time.Second))    // past window

	for _, tok := range []*domain.Token{fresh, inWindow, stale} {
		if err := store.Create(ctx, tok); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	removed := store.DeleteExpired(ctx, now, domain.DefaultRenewWindow)
	if removed != 1 {
		t.Errorf("DeleteExpired removed %d, want 1", removed)
	}
	if store.Count() != 2 {
		t.Errorf("Count = %d, want 2", store.Count())
	}
	if _, err := store.Get(ctx, stale.Hash); err == nil {
		t.Error("stale record survived the sweep")
	}
	if _, err := store.Get(ctx, inWindow.Hash); err != nil {
		t.Error("renewable record was swept")
	}
}

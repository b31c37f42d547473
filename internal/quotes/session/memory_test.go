package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"promopro_backend/internal/quotes/domain"
	"promopro_backend/platform/apperr"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	sess := domain.NewSession()
	sess.State = domain.StateCatalog
	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Get(ctx, sess.Token)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Token != sess.Token || got.State != domain.StateCatalog {
		t.Fatalf("expected saved session back, got %+v", got)
	}
}

func TestMemoryStoreMissingToken(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	_, err := store.Get(context.Background(), uuid.New())
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	base := time.Now()
	store.now = func() time.Time { return base }

	sess := domain.NewSession()
	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("save: %v", err)
	}

	store.now = func() time.Time { return base.Add(2 * time.Hour) }
	if _, err := store.Get(ctx, sess.Token); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected expired session to be gone, got %v", err)
	}
}

func TestMemoryStoreSaveRefreshesTTL(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	base := time.Now()
	store.now = func() time.Time { return base }

	sess := domain.NewSession()
	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("save: %v", err)
	}

	store.now = func() time.Time { return base.Add(50 * time.Minute) }
	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	store.now = func() time.Time { return base.Add(100 * time.Minute) }
	if _, err := store.Get(ctx, sess.Token); err != nil {
		t.Fatalf("expected refreshed session to survive, got %v", err)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	sess := domain.NewSession()
	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Delete(ctx, sess.Token); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, sess.Token); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}

	if err := store.Delete(ctx, sess.Token); err != nil {
		t.Fatalf("expected repeat delete to be a no-op, got %v", err)
	}
}

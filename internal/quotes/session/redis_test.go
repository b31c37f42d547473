package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"promopro_backend/internal/quotes/domain"
	"promopro_backend/platform/apperr"
)

func redisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, time.Hour), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, _ := redisStore(t)
	ctx := context.Background()

	sess := domain.NewSession()
	sess = sess.ViewCart()
	sess.Cart.Add(domain.LineItem{Name: "Termo Matterhorn 400ml", Quantity: 50})

	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Get(ctx, sess.Token)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.State != domain.StateCartReviewing {
		t.Fatalf("expected cart review state, got %s", got.State)
	}
	if got.Cart.Size() != 1 || got.Cart.Items[0].Name != "Termo Matterhorn 400ml" {
		t.Fatalf("expected cart contents back, got %+v", got.Cart)
	}
}

func TestRedisStoreMissingToken(t *testing.T) {
	store, _ := redisStore(t)

	_, err := store.Get(context.Background(), uuid.New())
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRedisStoreExpiry(t *testing.T) {
	store, mr := redisStore(t)
	ctx := context.Background()

	sess := domain.NewSession()
	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("save: %v", err)
	}

	mr.FastForward(2 * time.Hour)

	if _, err := store.Get(ctx, sess.Token); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected expired session to be gone, got %v", err)
	}
}

func TestRedisStoreDelete(t *testing.T) {
	store, _ := redisStore(t)
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
}

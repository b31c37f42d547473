package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"promopro_backend/internal/quotes/domain"
	"promopro_backend/platform/apperr"
)

const keyPrefix = "quote_session:"

// RedisStore keeps sessions in Redis so the storefront can run with more
// than one API replica. Sessions are stored as JSON under a TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Compile-time check that RedisStore implements Store.
var _ Store = (*RedisStore)(nil)

// Get returns the session or apperr.NotFound when absent/expired.
func (s *RedisStore) Get(ctx context.Context, token uuid.UUID) (domain.Session, error) {
	data, err := s.client.Get(ctx, keyPrefix+token.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Session{}, apperr.NotFound(notFoundMessage)
		}
		return domain.Session{}, fmt.Errorf("get session: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return domain.Session{}, fmt.Errorf("decode session: %w", err)
	}
	return sess, nil
}

// Save upserts the session and refreshes its TTL.
func (s *RedisStore) Save(ctx context.Context, sess domain.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+sess.Token.String(), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Delete removes the session.
func (s *RedisStore) Delete(ctx context.Context, token uuid.UUID) error {
	if err := s.client.Del(ctx, keyPrefix+token.String()).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

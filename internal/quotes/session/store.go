// Package session persists storefront sessions between requests. A session
// lives for one visit; there is no cross-visit persistence requirement, so
// both backends hold sessions under a TTL and let them lapse.
package session

import (
	"context"

	"github.com/google/uuid"

	"promopro_backend/internal/quotes/domain"
)

const notFoundMessage = "session not found or expired"

// Store persists sessions keyed by their opaque token.
// Each session has exactly one mutator (its visitor), so stores provide
// plain get/save semantics without compare-and-swap.
type Store interface {
	// Get returns the session or apperr.NotFound when absent/expired.
	Get(ctx context.Context, token uuid.UUID) (domain.Session, error)
	// Save upserts the session and refreshes its TTL.
	Save(ctx context.Context, s domain.Session) error
	// Delete removes the session. Absent tokens are a no-op.
	Delete(ctx context.Context, token uuid.UUID) error
}

package ports

import (
	"context"
	"time"

	"github.com/vigiliot/vigil-server/internal/domain"
)

// SessionRepository is the pluggable session store: Postgres in production,
// an in-memory map for tests and database-less development.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	// Find returns the session for token when it has not expired at now.
	Find(ctx context.Context, token string, now time.Time) (*domain.Session, error)
	// Extend slides the expiry of an active session forward.
	Extend(ctx context.Context, token string, expiresAt time.Time) error
	// Delete removes the session; deleting an unknown token is not an error.
	Delete(ctx context.Context, token string) error
}

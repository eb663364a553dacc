// Package memory holds in-process repository implementations used by tests
// and database-less development runs.
package memory

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/vigiliot/vigil-server/internal/domain"
)

// SessionRepository keeps sessions in a mutex-guarded map. Expired entries
// are dropped lazily on lookup.
type SessionRepository struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
}

func NewSessionRepo() *SessionRepository {
	return &SessionRepository{sessions: make(map[string]domain.Session)}
}

func (r *SessionRepository) Create(ctx context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.Token] = *session
	return nil
}

func (r *SessionRepository) Find(ctx context.Context, token string, now time.Time) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[token]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if !session.ExpiresAt.After(now) {
		delete(r.sessions, token)
		return nil, sql.ErrNoRows
	}
	clone := session
	return &clone, nil
}

func (r *SessionRepository) Extend(ctx context.Context, token string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if session, ok := r.sessions[token]; ok {
		session.ExpiresAt = expiresAt
		r.sessions[token] = session
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, token)
	return nil
}

package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/vigiliot/vigil-server/internal/domain"
)

type SessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepo(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, session *domain.Session) error {
	const query = `
        INSERT INTO sessions (token, user_id, email, created_at, expires_at)
        VALUES ($1, $2, $3, $4, $5)
    `
	_, err := r.db.ExecContext(ctx, query,
		session.Token, session.UserID, session.Email, session.CreatedAt, session.ExpiresAt)
	return err
}

func (r *SessionRepository) Find(ctx context.Context, token string, now time.Time) (*domain.Session, error) {
	const query = `
        SELECT token, user_id, email, created_at, expires_at
        FROM sessions
        WHERE token = $1 AND expires_at > $2
    `
	var session domain.Session
	if err := r.db.GetContext(ctx, &session, query, token, now); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) Extend(ctx context.Context, token string, expiresAt time.Time) error {
	const query = `
        UPDATE sessions SET expires_at = $2 WHERE token = $1
    `
	_, err := r.db.ExecContext(ctx, query, token, expiresAt)
	return err
}

func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	const query = `
        DELETE FROM sessions WHERE token = $1
    `
	_, err := r.db.ExecContext(ctx, query, token)
	return err
}

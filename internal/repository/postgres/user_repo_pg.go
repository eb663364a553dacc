package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/vigiliot/vigil-server/internal/domain"
	"github.com/vigiliot/vigil-server/internal/repository/ports"
)

const pgUniqueViolation = "23505"

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, email, hashedPassword string) (*domain.User, error) {
	const query = `
        INSERT INTO users (email, hashed_password)
        VALUES ($1, $2)
        RETURNING user_id, email, hashed_password, reset_token, reset_token_expiry
    `
	row := r.db.QueryRowxContext(ctx, query, email, hashedPassword)
	var user domain.User
	if err := row.StructScan(&user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, ports.ErrDuplicateEmail
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
        SELECT user_id, email, hashed_password, reset_token, reset_token_expiry
        FROM users
        WHERE email = $1
    `
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	const query = `
        SELECT user_id, email, hashed_password, reset_token, reset_token_expiry
        FROM users
        WHERE user_id = $1
    `
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) SetResetToken(ctx context.Context, userID int64, tokenHash string, expiryMillis int64) error {
	const query = `
        UPDATE users
        SET reset_token = $2, reset_token_expiry = $3
        WHERE user_id = $1
    `
	_, err := r.db.ExecContext(ctx, query, userID, tokenHash, expiryMillis)
	return err
}

func (r *UserRepository) FindByResetToken(ctx context.Context, tokenHash string, nowMillis int64) (*domain.User, error) {
	const query = `
        SELECT user_id, email, hashed_password, reset_token, reset_token_expiry
        FROM users
        WHERE reset_token = $1 AND reset_token_expiry > $2
    `
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, tokenHash, nowMillis); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) ConsumeResetToken(ctx context.Context, tokenHash string, nowMillis int64, newHashedPassword string) (bool, error) {
	// The WHERE clause repeats the validity predicate so the replace-and-clear
	// is atomic: a second attempt with the same token matches zero rows.
	const query = `
        UPDATE users
        SET hashed_password = $3, reset_token = NULL, reset_token_expiry = NULL
        WHERE reset_token = $1 AND reset_token_expiry > $2
    `
	result, err := r.db.ExecContext(ctx, query, tokenHash, nowMillis, newHashedPassword)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

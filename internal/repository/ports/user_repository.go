package ports

import (
	"context"
	"errors"

	"github.com/vigiliot/vigil-server/internal/domain"
)

// ErrDuplicateEmail is returned by UserRepository.Create when the email is
// already taken. Implementations translate their driver's unique-violation
// error into it.
var ErrDuplicateEmail = errors.New("email already taken")

type UserRepository interface {
	Create(ctx context.Context, email, hashedPassword string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// SetResetToken stores the hash and expiry of a freshly issued reset
	// token, overwriting any outstanding token for the user.
	SetResetToken(ctx context.Context, userID int64, tokenHash string, expiryMillis int64) error
	// FindByResetToken matches a token hash whose expiry is after nowMillis.
	FindByResetToken(ctx context.Context, tokenHash string, nowMillis int64) (*domain.User, error)
	// ConsumeResetToken atomically replaces the password hash and clears the
	// token fields, guarded by the same hash+expiry predicate as
	// FindByResetToken. It reports whether a row was updated, so a consumed
	// or expired token can never authorize a second change.
	ConsumeResetToken(ctx context.Context, tokenHash string, nowMillis int64, newHashedPassword string) (bool, error)
}

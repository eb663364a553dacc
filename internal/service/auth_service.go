package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vigiliot/vigil-server/internal/domain"
	"github.com/vigiliot/vigil-server/internal/repository/ports"
	"github.com/vigiliot/vigil-server/internal/util"
)

// ResetLinkSender dispatches the password-reset email carrying the raw token
// embedded in a reset URL.
type ResetLinkSender interface {
	SendResetLink(ctx context.Context, email, resetURL string) error
}

// AuthService implements registration, login, server-side sessions, and the
// password-reset workflow.
type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionRepository
	mailer   ResetLinkSender

	sessionTTL      time.Duration
	sessionLifetime time.Duration
	resetTTL        time.Duration
	resetBaseURL    string

	now func() time.Time
}

func NewAuthService(
	users ports.UserRepository,
	sessions ports.SessionRepository,
	mailer ResetLinkSender,
	sessionTTL, sessionLifetime, resetTTL time.Duration,
	resetBaseURL string,
) *AuthService {
	return &AuthService{
		users:           users,
		sessions:        sessions,
		mailer:          mailer,
		sessionTTL:      sessionTTL,
		sessionLifetime: sessionLifetime,
		resetTTL:        resetTTL,
		resetBaseURL:    strings.TrimRight(resetBaseURL, "/"),
		now:             time.Now,
	}
}

// Register creates an account with a salted bcrypt hash of the password.
func (s *AuthService) Register(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return ErrMissingField
	}

	hashed, err := util.HashPassword(password)
	if err != nil {
		return err
	}

	if _, err := s.users.Create(ctx, email, hashed); err != nil {
		if errors.Is(err, ports.ErrDuplicateEmail) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

// Login verifies the credentials and establishes a server-side session with a
// sliding expiry.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrMissingField
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEmailNotFound
		}
		return nil, err
	}
	if !util.VerifyPassword(password, user.HashedPassword) {
		return nil, ErrWrongPassword
	}

	now := s.now()
	session := &domain.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		Email:     user.Email,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Logout destroys the session. Unknown or empty tokens are not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

// CheckSession resolves the session for token and slides its expiry forward,
// bounded by the absolute lifetime cap measured from session creation.
func (s *AuthService) CheckSession(ctx context.Context, token string) (*domain.SessionUser, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}

	now := s.now()
	session, err := s.sessions.Find(ctx, token, now)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	hardStop := session.CreatedAt.Add(s.sessionLifetime)
	if !now.Before(hardStop) {
		_ = s.sessions.Delete(ctx, token)
		return nil, ErrSessionNotFound
	}

	next := now.Add(s.sessionTTL)
	if next.After(hardStop) {
		next = hardStop
	}
	if err := s.sessions.Extend(ctx, token, next); err != nil {
		return nil, err
	}

	user := session.User()
	return &user, nil
}

// RequestReset issues a single-use, time-bound reset token for the account,
// overwriting any outstanding token, and emails a reset link carrying the raw
// token. Only the SHA-256 hash of the token is stored.
func (s *AuthService) RequestReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return ErrMissingField
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrEmailNotFound
		}
		return err
	}

	raw, hashed, err := util.NewResetToken()
	if err != nil {
		return err
	}

	expiry := s.now().Add(s.resetTTL).UnixMilli()
	if err := s.users.SetResetToken(ctx, user.ID, hashed, expiry); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/get-reset-page?token=%s", s.resetBaseURL, url.QueryEscape(raw))
	return s.mailer.SendResetLink(ctx, user.Email, resetURL)
}

// ValidateResetToken resolves the user holding an unexpired token matching
// raw, or ErrResetTokenInvalid.
func (s *AuthService) ValidateResetToken(ctx context.Context, raw string) (*domain.User, error) {
	if raw == "" {
		return nil, ErrResetTokenInvalid
	}
	user, err := s.users.FindByResetToken(ctx, util.HashResetToken(raw), s.now().UnixMilli())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrResetTokenInvalid
		}
		return nil, err
	}
	return user, nil
}

// ConsumeResetToken replaces the password and clears the token fields in one
// atomic update. A token that was already consumed, or that expired, fails
// with ErrResetTokenInvalid.
func (s *AuthService) ConsumeResetToken(ctx context.Context, raw, newPassword string) error {
	if raw == "" || newPassword == "" {
		return ErrMissingField
	}

	hashed, err := util.HashPassword(newPassword)
	if err != nil {
		return err
	}

	ok, err := s.users.ConsumeResetToken(ctx, util.HashResetToken(raw), s.now().UnixMilli(), hashed)
	if err != nil {
		return err
	}
	if !ok {
		return ErrResetTokenInvalid
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

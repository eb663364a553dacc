package memory

import (
	"context"
	"testing"
	"time"

	"github.com/vigiliot/vigil-server/internal/domain"
)

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepo()
	now := time.Now()

	session := &domain.Session{
		Token:     "tok-1",
		UserID:    7,
		Email:     "user@example.com",
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}
	if err := repo.Create(ctx, session); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	found, err := repo.Find(ctx, "tok-1", now)
	if err != nil {
		t.Fatalf("expected session, got %v", err)
	}
	if found.UserID != 7 || found.Email != "user@example.com" {
		t.Fatalf("unexpected session contents: %+v", found)
	}

	if err := repo.Delete(ctx, "tok-1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := repo.Find(ctx, "tok-1", now); err == nil {
		t.Fatal("expected lookup after delete to fail")
	}
	// deleting again is a no-op
	if err := repo.Delete(ctx, "tok-1"); err != nil {
		t.Fatalf("expected idempotent delete, got %v", err)
	}
}

func TestFindDropsExpiredSessions(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepo()
	now := time.Now()

	session := &domain.Session{Token: "tok-2", ExpiresAt: now.Add(time.Minute)}
	if err := repo.Create(ctx, session); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := repo.Find(ctx, "tok-2", now.Add(2*time.Minute)); err == nil {
		t.Fatal("expected expired session lookup to fail")
	}
}

func TestExtendSlidesExpiry(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepo()
	now := time.Now()

	session := &domain.Session{Token: "tok-3", ExpiresAt: now.Add(time.Minute)}
	if err := repo.Create(ctx, session); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := repo.Extend(ctx, "tok-3", now.Add(time.Hour)); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	found, err := repo.Find(ctx, "tok-3", now.Add(30*time.Minute))
	if err != nil {
		t.Fatalf("expected extended session to be live, got %v", err)
	}
	if !found.ExpiresAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("expected expiry %v, got %v", now.Add(time.Hour), found.ExpiresAt)
	}
}

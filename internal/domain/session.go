package domain

import "time"

// Session binds a browser cookie to an authenticated user. ExpiresAt slides
// forward on every authenticated request; CreatedAt bounds the absolute
// lifetime regardless of activity.
type Session struct {
	Token     string    `db:"token" json:"token"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
}

func (s *Session) User() SessionUser {
	return SessionUser{UserID: s.UserID, Email: s.Email}
}

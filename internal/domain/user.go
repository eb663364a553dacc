package domain

// User is an account that owns scan reports. The reset token fields hold a
// SHA-256 hash of the last issued password-reset token and its expiry in epoch
// milliseconds; both are nil while no token is outstanding.
type User struct {
	ID               int64   `db:"user_id" json:"user_id"`
	Email            string  `db:"email" json:"email"`
	HashedPassword   string  `db:"hashed_password" json:"-"`
	ResetTokenHash   *string `db:"reset_token" json:"-"`
	ResetTokenExpiry *int64  `db:"reset_token_expiry" json:"-"`
}

// SessionUser is the sanitized user summary stored in a session and returned
// by login and check_login.
type SessionUser struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}

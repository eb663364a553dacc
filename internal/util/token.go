package util

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

// resetTokenBytes gives 64 hex characters, the width the users table stores.
const resetTokenBytes = 32

// NewResetToken returns a cryptographically random reset token as raw hex
// together with the SHA-256 hash that is persisted. Only the hash ever
// touches the database; the raw token travels in the emailed reset URL.
func NewResetToken() (raw, hashed string, err error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	raw = hex.EncodeToString(buf)
	return raw, HashResetToken(raw), nil
}

// HashResetToken hashes an incoming raw token for lookup against the stored
// value.
func HashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

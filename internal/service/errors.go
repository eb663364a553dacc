package service

import "errors"

// Error taxonomy shared by the handlers: validation failures map to 400,
// not-found outcomes to 400/404, everything else to 500.
var (
	ErrEmailTaken        = errors.New("email already taken")
	ErrEmailNotFound     = errors.New("email not found")
	ErrWrongPassword     = errors.New("wrong password")
	ErrSessionNotFound   = errors.New("no active session")
	ErrResetTokenInvalid = errors.New("invalid or expired reset token")
	ErrMissingField      = errors.New("missing required fields")
	ErrInvalidTarget     = errors.New("invalid scan target")
	ErrReportNotFound    = errors.New("report not found")
)

package auth

import "skilllink/internal/pkg/errs"

var (
	ErrInvalidCredentials = errs.Authorization("invalid email or password")
	ErrInvalidSession     = errs.Authorization("invalid or expired session")
	ErrSessionRevoked     = errs.Authorization("session has been signed out")
	ErrWeakPassword       = errs.Validation("password must have at least 6 characters")
	ErrInvalidEmail       = errs.Validation("invalid email address")
)

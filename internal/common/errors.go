package common

import "errors"

var (
	// repository errors
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrStoreNotConfigured = errors.New("sheet store not configured")
	ErrStoreUnavailable   = errors.New("sheet store unavailable")

	// token verification errors. Callers map all four to "unauthenticated";
	// the distinction exists for logging.
	ErrMalformedToken   = errors.New("malformed token")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrInvalidTokenType = errors.New("invalid token type")
	ErrTokenExpired     = errors.New("token expired")

	ErrInvalidCredentials = errors.New("invalid credentials")
)

package identity

import "errors"

// Service errors.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already registered")

	// ErrInvalidCredentials covers both unknown email and wrong
	// password; the two causes are never distinguishable to callers.
	ErrInvalidCredentials = errors.New("incorrect email or password")

	// ErrInvalidToken covers signature mismatch, expiry, and broken
	// structure on the refresh path.
	ErrInvalidToken = errors.New("invalid token")

	// ErrMalformedToken marks a token that decoded but carries no
	// subject claim.
	ErrMalformedToken = errors.New("token has no subject claim")

	ErrInvalidRole = errors.New("invalid role")
)

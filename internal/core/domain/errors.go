package domain

import "errors"

// Sentinel errors crossing the service boundary. Handlers map these to HTTP
// status codes; anything else is treated as an internal error.
var (
	// ErrInvalidInput rejects malformed sign-up input before any store access.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUsernameTaken and ErrEmailTaken distinguish which field collided so
	// the caller can correct it. Nothing beyond the colliding field is leaked.
	ErrUsernameTaken = errors.New("username is already taken")
	ErrEmailTaken    = errors.New("email is already in use")

	// ErrInvalidCredentials covers both unknown email and wrong password.
	// The two cases must stay indistinguishable to the client.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTooManyAttempts rejects sign-ins throttled after repeated failures.
	ErrTooManyAttempts = errors.New("too many sign-in attempts")

	// ErrTokenInvalid covers malformed, badly signed, and expired tokens.
	ErrTokenInvalid = errors.New("invalid token")

	// ErrUserNotFound is returned by repositories; the auth service converts
	// it before it can reach a client.
	ErrUserNotFound = errors.New("user not found")

	// ErrStoreUnavailable marks infrastructure failures. Distinct from auth
	// rejections and safe for the caller to retry.
	ErrStoreUnavailable = errors.New("store unavailable")
)

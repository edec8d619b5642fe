package ports

import (
	"time"

	"github.com/nexaa/auth-service/internal/core/domain"
)

// TokenVerifier checks a compact bearer token and reconstructs its claims.
// Malformed input, a signature mismatch, and an expired token all yield
// domain.ErrTokenInvalid — a predictable outcome, not an internal failure.
type TokenVerifier interface {
	Verify(token string) (*domain.Claims, error)
}

// TokenIssuer signs time-bound bearer tokens carrying identity claims.
type TokenIssuer interface {
	TokenVerifier

	// Issue produces a signed token for the given identity and returns its
	// expiry (issue time + configured TTL).
	Issue(userID, username string, roles []string) (token string, expiresAt time.Time, err error)
}

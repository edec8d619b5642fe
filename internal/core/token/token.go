// Package token implements the HS256 bearer token issuer/verifier.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nexaa/auth-service/internal/core/domain"
)

const defaultTTL = 24 * time.Hour

// Issuer signs and verifies JWTs with a single active HMAC secret. The secret
// and TTL are constructor parameters so tests can inject distinct values.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

type jwtClaims struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

// Issue produces a signed token embedding subject, username, roles, issued-at,
// and expiry = issued-at + TTL. Pure function of inputs, clock, and secret.
func (i *Issuer) Issue(userID, username string, roles []string) (string, time.Time, error) {
	now := i.now().UTC()
	expiresAt := now.Add(i.ttl)

	claims := jwtClaims{
		Username: username,
		Roles:    roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify parses the token, checks the signature against the active secret,
// then checks expiry. The signing method is pinned to HS256; no fallback
// algorithms are accepted.
func (i *Issuer) Verify(token string) (*domain.Claims, error) {
	claims := &jwtClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return i.now() }))
	if err != nil || !parsed.Valid {
		return nil, domain.ErrTokenInvalid
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		return nil, domain.ErrTokenInvalid
	}

	return &domain.Claims{
		Subject:   claims.Subject,
		Username:  claims.Username,
		Roles:     claims.Roles,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

package ports

import (
	"context"
	"time"

	"github.com/nexaa/auth-service/internal/core/domain"
)

// SignInResult carries a freshly issued token plus the non-sensitive user
// summary returned to the client. The password hash never leaves the service.
type SignInResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// AuthService orchestrates registration, authentication, and stateless token
// validation.
type AuthService interface {
	// SignUp registers a new user. It does not authenticate; the caller must
	// sign in separately to obtain a token.
	SignUp(ctx context.Context, username, email, password string) (*domain.User, error)

	// SignIn authenticates by email and password and issues a bearer token.
	SignIn(ctx context.Context, email, password string) (*SignInResult, error)

	// Validate checks a token without touching the credential store. A token
	// issued to a since-deleted user stays valid until natural expiry.
	Validate(token string) (*domain.Claims, error)

	// CurrentUser loads the fresh record for an authenticated principal.
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
}

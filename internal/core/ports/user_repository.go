package ports

import (
	"context"

	"github.com/nexaa/auth-service/internal/core/domain"
)

// UserRepository defines the persistence interface for user records.
// Username/email uniqueness is enforced by the store itself; Create must
// surface a uniqueness violation as domain.ErrUsernameTaken or
// domain.ErrEmailTaken even when an earlier existence check passed.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

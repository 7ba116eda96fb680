package port

import (
	"context"

	"github.com/jvfernandez09/jfc-app/internal/core/domain"
)

// UserRepository exposes persistence behaviour for users.
//
// Create and UpdateProfile return repository.ErrConflict when the email
// uniqueness constraint is violated. The constraint is enforced only at the
// storage layer, so two writers racing on one email resolve to exactly one
// success and one conflict.
type UserRepository interface {
	Create(ctx context.Context, name, email, passwordHash string) (string, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id, name, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) error
}

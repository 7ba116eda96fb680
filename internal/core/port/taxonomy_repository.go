package port

import (
	"context"

	"github.com/jvfernandez09/jfc-app/internal/core/domain"
)

// CategoryRepository exposes persistence behaviour for categories.
// Create and Rename return repository.ErrConflict on duplicate names.
type CategoryRepository interface {
	Create(ctx context.Context, name string) (string, error)
	List(ctx context.Context) ([]domain.Category, error)
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	Rename(ctx context.Context, id, name string) error
	Delete(ctx context.Context, id string) error
}

// TagRepository exposes persistence behaviour for tags.
// Create and Rename return repository.ErrConflict on duplicate names.
type TagRepository interface {
	Create(ctx context.Context, name string) (string, error)
	List(ctx context.Context) ([]domain.Tag, error)
	GetByID(ctx context.Context, id string) (*domain.Tag, error)
	Rename(ctx context.Context, id, name string) error
	Delete(ctx context.Context, id string) error
}

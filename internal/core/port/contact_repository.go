package port

import (
	"context"

	"github.com/jvfernandez09/jfc-app/internal/core/domain"
)

// ContactRepository exposes persistence behaviour for people and their tag
// links. Tag links are replaced wholesale on update.
type ContactRepository interface {
	Create(ctx context.Context, person domain.Person, tagIDs []string) (string, error)
	List(ctx context.Context) ([]domain.Person, error)
	GetByID(ctx context.Context, id string) (*domain.Person, error)
	Update(ctx context.Context, person domain.Person, tagIDs []string) error
	Delete(ctx context.Context, id string) error
}

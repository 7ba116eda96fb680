package port

import (
	"context"

	"github.com/jvfernandez09/jfc-app/internal/core/domain"
)

// BusinessRepository exposes persistence behaviour for businesses and their
// category/tag links. Links are replaced wholesale on update.
type BusinessRepository interface {
	Create(ctx context.Context, business domain.Business, categoryIDs, tagIDs []string) (string, error)
	List(ctx context.Context) ([]domain.Business, error)
	GetByID(ctx context.Context, id string) (*domain.Business, error)
	Update(ctx context.Context, business domain.Business, categoryIDs, tagIDs []string) error
	Delete(ctx context.Context, id string) error
}

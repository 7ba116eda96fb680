package port

import (
	"context"

	"github.com/jvfernandez09/jfc-app/internal/core/domain"
)

// TaskRepository exposes persistence behaviour for tasks and their single
// assignment to a person or business.
type TaskRepository interface {
	Create(ctx context.Context, task domain.Task, target domain.TaskTarget) (string, error)
	List(ctx context.Context) ([]domain.TaskListItem, error)
	ListByPerson(ctx context.Context, personID string) ([]domain.Task, error)
	ListByBusiness(ctx context.Context, businessID string) ([]domain.Task, error)
	SetDone(ctx context.Context, id string, done bool) error
}

package ports

import (
	"context"

	"github.com/projecthub/api/internal/core/domain"
)

// TaskFilter narrows task listings. Empty fields are not applied.
type TaskFilter struct {
	ProjectID  string
	AssigneeID string
}

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) (*domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	// List returns matching tasks, newest first.
	List(ctx context.Context, filter TaskFilter) ([]*domain.Task, error)
	// Update persists every mutable field; ProjectID is never written.
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
	DeleteByProject(ctx context.Context, projectID string) (int64, error)
	CountByStatus(ctx context.Context) (map[domain.TaskStatus]int64, error)
}

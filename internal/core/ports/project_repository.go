package ports

import (
	"context"

	"github.com/projecthub/api/internal/core/domain"
)

// ProjectRepository defines persistence operations for projects.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Project, error)
	// ListForUser returns projects where userID is owner or member, newest first.
	ListForUser(ctx context.Context, userID string) ([]*domain.Project, error)
	ListAll(ctx context.Context) ([]*domain.Project, error)
	// Update persists name, description, status and deadline. Owner and
	// members are never written through Update.
	Update(ctx context.Context, p *domain.Project) error
	// AddMember appends userID to the member set unless already present.
	// The check and the write happen in a single document update; added is
	// false when the user was already a member.
	AddMember(ctx context.Context, projectID, userID string) (added bool, err error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}

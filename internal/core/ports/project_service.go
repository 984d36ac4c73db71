package ports

import (
	"context"
	"time"

	"github.com/projecthub/api/internal/core/domain"
)

type CreateProjectInput struct {
	Name        string
	Description string
	Status      string
	Deadline    *time.Time
}

// UpdateProjectInput carries the fields to change; nil means unchanged.
type UpdateProjectInput struct {
	Name          *string
	Description   *string
	Status        *string
	Deadline      *time.Time
	// ClearDeadline removes the deadline; it wins over Deadline.
	ClearDeadline bool
}

// ProjectView is a project with owner and members resolved to summaries.
// Member references to users that no longer resolve are omitted.
type ProjectView struct {
	Project *domain.Project
	Owner   *domain.UserSummary
	Members []domain.UserSummary
}

type ProjectService interface {
	List(ctx context.Context, actor *domain.Actor) ([]ProjectView, error)
	ListAll(ctx context.Context, actor *domain.Actor) ([]ProjectView, error)
	Get(ctx context.Context, actor *domain.Actor, id string) (*ProjectView, error)
	Create(ctx context.Context, actor *domain.Actor, in CreateProjectInput) (*ProjectView, error)
	Update(ctx context.Context, actor *domain.Actor, id string, in UpdateProjectInput) (*ProjectView, error)
	// AddMember returns domain.ErrAlreadyMember when userID is already in
	// the member set; the project is left unchanged in that case.
	AddMember(ctx context.Context, actor *domain.Actor, projectID, userID string) (*ProjectView, error)
	Delete(ctx context.Context, actor *domain.Actor, id string) error
}

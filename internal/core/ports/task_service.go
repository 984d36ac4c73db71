package ports

import (
	"context"
	"time"

	"github.com/projecthub/api/internal/core/domain"
)

type CreateTaskInput struct {
	ProjectID   string
	Title       string
	Description string
	AssigneeID  string // empty assigns the task to the caller
	Priority    string // empty defaults to "medium"
	Deadline    *time.Time
}

// UpdateTaskInput carries the fields to change; nil means unchanged.
type UpdateTaskInput struct {
	Title         *string
	Description   *string
	AssigneeID    *string
	Status        *string
	Priority      *string
	Deadline      *time.Time
	// ClearDeadline removes the deadline; it wins over Deadline.
	ClearDeadline bool
}

// TaskView is a task with its assignee and project resolved to summaries.
type TaskView struct {
	Task     *domain.Task
	Assignee *domain.UserSummary
	Project  *domain.ProjectSummary
}

type TaskService interface {
	ListAll(ctx context.Context, actor *domain.Actor) ([]TaskView, error)
	ListMine(ctx context.Context, actor *domain.Actor) ([]TaskView, error)
	// ListByProject returns every task in the project for admins and only
	// the caller's assigned tasks for regular users.
	ListByProject(ctx context.Context, actor *domain.Actor, projectID string) ([]TaskView, error)
	Create(ctx context.Context, actor *domain.Actor, in CreateTaskInput) (*TaskView, error)
	// Assign is the admin-only alternate creation path; the assignee is
	// mandatory and project membership is not checked.
	Assign(ctx context.Context, actor *domain.Actor, in CreateTaskInput) (*TaskView, error)
	Update(ctx context.Context, actor *domain.Actor, id string, in UpdateTaskInput) (*TaskView, error)
	Delete(ctx context.Context, actor *domain.Actor, id string) error
}

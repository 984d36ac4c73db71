package ports

import (
	"context"

	"github.com/projecthub/api/internal/core/domain"
)

// DashboardStats aggregates counts for the admin dashboard.
type DashboardStats struct {
	Users          int64                       `json:"users"`
	Projects       int64                       `json:"projects"`
	ActiveProjects int64                       `json:"activeProjects"`
	CompletedTasks int64                       `json:"completedTasks"`
	TasksByStatus  map[domain.TaskStatus]int64 `json:"tasksByStatus"`
}

// StatsCache is a short-lived store for computed dashboard stats. A miss is
// reported as (nil, nil).
type StatsCache interface {
	Get(ctx context.Context) (*DashboardStats, error)
	Set(ctx context.Context, stats *DashboardStats) error
}

type AdminService interface {
	Stats(ctx context.Context, actor *domain.Actor) (*DashboardStats, error)
	ListUsers(ctx context.Context, actor *domain.Actor) ([]*domain.User, error)
	GetUser(ctx context.Context, actor *domain.Actor, id string) (*domain.User, error)
	AssignRole(ctx context.Context, actor *domain.Actor, userID, role string) (*domain.User, error)
}

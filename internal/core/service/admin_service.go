package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/projecthub/api/internal/core/domain"
	"github.com/projecthub/api/internal/core/policy"
	"github.com/projecthub/api/internal/core/ports"
	"github.com/projecthub/api/internal/pkg/metrics"
)

// AdminService implements the admin dashboard operations. cache may be nil.
type AdminService struct {
	users    ports.UserRepository
	projects ports.ProjectRepository
	tasks    ports.TaskRepository
	cache    ports.StatsCache
	log      zerolog.Logger
	now      func() time.Time
}

func NewAdminService(
	users ports.UserRepository,
	projects ports.ProjectRepository,
	tasks ports.TaskRepository,
	cache ports.StatsCache,
	log zerolog.Logger,
) *AdminService {
	return &AdminService{users: users, projects: projects, tasks: tasks, cache: cache, log: log, now: time.Now}
}

var _ ports.AdminService = (*AdminService)(nil)

// Stats returns dashboard counts, served from cache when available. Cache
// errors fall through to the database.
func (s *AdminService) Stats(ctx context.Context, actor *domain.Actor) (*ports.DashboardStats, error) {
	if err := policy.Authorize(actor, policy.ActionStatsRead, policy.Resource{}); err != nil {
		return nil, err
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		switch {
		case err != nil:
			metrics.StatsCacheTotal.WithLabelValues("error").Inc()
			s.log.Warn().Err(err).Msg("stats cache read failed")
		case cached != nil:
			metrics.StatsCacheTotal.WithLabelValues("hit").Inc()
			return cached, nil
		default:
			metrics.StatsCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	stats, err := s.computeStats(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, stats); err != nil {
			s.log.Warn().Err(err).Msg("stats cache write failed")
		}
	}
	return stats, nil
}

func (s *AdminService) computeStats(ctx context.Context) (*ports.DashboardStats, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	projects, err := s.projects.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count projects: %w", err)
	}
	active, err := s.projects.CountByStatus(ctx, domain.ProjectStatusActive)
	if err != nil {
		return nil, fmt.Errorf("count active projects: %w", err)
	}
	byStatus, err := s.tasks.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count tasks: %w", err)
	}

	counts := make(map[domain.TaskStatus]int64, len(domain.TaskStatuses))
	for _, st := range domain.TaskStatuses {
		counts[st] = byStatus[st]
	}

	return &ports.DashboardStats{
		Users:          users,
		Projects:       projects,
		ActiveProjects: active,
		CompletedTasks: counts[domain.TaskStatusDone],
		TasksByStatus:  counts,
	}, nil
}

func (s *AdminService) ListUsers(ctx context.Context, actor *domain.Actor) ([]*domain.User, error) {
	if err := policy.Authorize(actor, policy.ActionUserList, policy.Resource{}); err != nil {
		return nil, err
	}
	return s.users.List(ctx)
}

func (s *AdminService) GetUser(ctx context.Context, actor *domain.Actor, id string) (*domain.User, error) {
	if err := policy.Authorize(actor, policy.ActionUserRead, policy.Resource{}); err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, id)
}

func (s *AdminService) AssignRole(ctx context.Context, actor *domain.Actor, userID, role string) (*domain.User, error) {
	if err := policy.Authorize(actor, policy.ActionRoleAssign, policy.Resource{}); err != nil {
		return nil, err
	}
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: userId is required", domain.ErrInvalidInput)
	}
	r := domain.Role(role)
	if !r.Valid() {
		return nil, fmt.Errorf("%w: role must be user or admin", domain.ErrInvalidInput)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role == r {
		return user, nil
	}

	user.Role = r
	user.UpdatedAt = s.now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("role", role).Str("by", actor.ID).Msg("role assigned")
	return user, nil
}

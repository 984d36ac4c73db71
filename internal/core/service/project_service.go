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
)

type ProjectService struct {
	projects ports.ProjectRepository
	users    ports.UserRepository
	tasks    ports.TaskRepository
	log      zerolog.Logger
	now      func() time.Time
}

func NewProjectService(
	projects ports.ProjectRepository,
	users ports.UserRepository,
	tasks ports.TaskRepository,
	log zerolog.Logger,
) *ProjectService {
	return &ProjectService{projects: projects, users: users, tasks: tasks, log: log, now: time.Now}
}

var _ ports.ProjectService = (*ProjectService)(nil)

// List returns the projects the caller owns or belongs to. Admins are
// scoped the same way; ListAll is the system-wide view.
func (s *ProjectService) List(ctx context.Context, actor *domain.Actor) ([]ports.ProjectView, error) {
	if err := policy.Authorize(actor, policy.ActionProjectList, policy.Resource{}); err != nil {
		return nil, err
	}
	projects, err := s.projects.ListForUser(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, projects)
}

func (s *ProjectService) ListAll(ctx context.Context, actor *domain.Actor) ([]ports.ProjectView, error) {
	if err := policy.Authorize(actor, policy.ActionProjectListAll, policy.Resource{}); err != nil {
		return nil, err
	}
	projects, err := s.projects.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, projects)
}

func (s *ProjectService) Get(ctx context.Context, actor *domain.Actor, id string) (*ports.ProjectView, error) {
	if err := policy.Authenticated(actor); err != nil {
		return nil, err
	}
	p, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.ActionProjectRead, policy.ProjectResource(p)); err != nil {
		return nil, err
	}
	return s.view(ctx, p)
}

// Create stores a project owned by the caller, who becomes its first member.
func (s *ProjectService) Create(ctx context.Context, actor *domain.Actor, in ports.CreateProjectInput) (*ports.ProjectView, error) {
	if err := policy.Authorize(actor, policy.ActionProjectCreate, policy.Resource{}); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = domain.ProjectStatusActive
	}

	now := s.now().UTC()
	created, err := s.projects.Create(ctx, &domain.Project{
		Name:        name,
		Description: in.Description,
		OwnerID:     actor.ID,
		MemberIDs:   []string{actor.ID},
		Status:      status,
		Deadline:    in.Deadline,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("project_id", created.ID).Str("owner_id", actor.ID).Msg("project created")
	return s.view(ctx, created)
}

func (s *ProjectService) Update(ctx context.Context, actor *domain.Actor, id string, in ports.UpdateProjectInput) (*ports.ProjectView, error) {
	if err := policy.Authorize(actor, policy.ActionProjectUpdate, policy.Resource{}); err != nil {
		return nil, err
	}

	p, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", domain.ErrInvalidInput)
		}
		p.Name = name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Status != nil {
		if status := strings.TrimSpace(*in.Status); status != "" {
			p.Status = status
		}
	}
	switch {
	case in.ClearDeadline:
		p.Deadline = nil
	case in.Deadline != nil:
		p.Deadline = in.Deadline
	}
	p.UpdatedAt = s.now().UTC()

	if err := s.projects.Update(ctx, p); err != nil {
		return nil, err
	}
	return s.view(ctx, p)
}

// AddMember appends userID to the project's member set. Adding an existing
// member reports domain.ErrAlreadyMember and leaves the project unchanged.
func (s *ProjectService) AddMember(ctx context.Context, actor *domain.Actor, projectID, userID string) (*ports.ProjectView, error) {
	if err := policy.Authorize(actor, policy.ActionProjectAddMember, policy.Resource{}); err != nil {
		return nil, err
	}
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: userId is required", domain.ErrInvalidInput)
	}

	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	added, err := s.projects.AddMember(ctx, projectID, user.ID)
	if err != nil {
		return nil, err
	}
	if !added {
		return nil, domain.ErrAlreadyMember
	}

	p, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("project_id", projectID).Str("user_id", user.ID).Msg("member added")
	return s.view(ctx, p)
}

// Delete removes the project and then every task that belongs to it.
func (s *ProjectService) Delete(ctx context.Context, actor *domain.Actor, id string) error {
	if err := policy.Authorize(actor, policy.ActionProjectDelete, policy.Resource{}); err != nil {
		return err
	}

	if _, err := s.projects.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.projects.Delete(ctx, id); err != nil {
		return err
	}

	removed, err := s.tasks.DeleteByProject(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Str("project_id", id).Msg("project deleted but its tasks were not")
		return fmt.Errorf("delete project tasks: %w", err)
	}

	s.log.Info().Str("project_id", id).Int64("tasks_removed", removed).Msg("project deleted")
	return nil
}

func (s *ProjectService) view(ctx context.Context, p *domain.Project) (*ports.ProjectView, error) {
	views, err := s.views(ctx, []*domain.Project{p})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *ProjectService) views(ctx context.Context, projects []*domain.Project) ([]ports.ProjectView, error) {
	ids := make([]string, 0)
	for _, p := range projects {
		ids = append(ids, p.OwnerID)
		ids = append(ids, p.MemberIDs...)
	}
	dir, err := userDirectory(ctx, s.users, uniqueIDs(ids))
	if err != nil {
		return nil, err
	}

	out := make([]ports.ProjectView, 0, len(projects))
	for _, p := range projects {
		members := make([]domain.UserSummary, 0, len(p.MemberIDs))
		for _, id := range p.MemberIDs {
			if u, ok := dir[id]; ok {
				members = append(members, u)
			}
		}
		out = append(out, ports.ProjectView{
			Project: p,
			Owner:   lookup(dir, p.OwnerID),
			Members: members,
		})
	}
	return out, nil
}

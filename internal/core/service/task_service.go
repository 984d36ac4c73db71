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

type taskService struct {
	tasks    ports.TaskRepository
	projects ports.ProjectRepository
	users    ports.UserRepository
	recorder ports.ActivityRecorder
	log      zerolog.Logger
	now      func() time.Time
}

// NewTaskService returns a TaskService that records task creation, status
// changes and deletion through recorder.
func NewTaskService(
	tasks ports.TaskRepository,
	projects ports.ProjectRepository,
	users ports.UserRepository,
	recorder ports.ActivityRecorder,
	log zerolog.Logger,
) ports.TaskService {
	return &taskService{
		tasks:    tasks,
		projects: projects,
		users:    users,
		recorder: recorder,
		log:      log,
		now:      time.Now,
	}
}

func (s *taskService) ListAll(ctx context.Context, actor *domain.Actor) ([]ports.TaskView, error) {
	if err := policy.Authorize(actor, policy.ActionTaskListAll, policy.Resource{}); err != nil {
		return nil, err
	}
	return s.list(ctx, ports.TaskFilter{})
}

func (s *taskService) ListMine(ctx context.Context, actor *domain.Actor) ([]ports.TaskView, error) {
	if err := policy.Authorize(actor, policy.ActionTaskListOwn, policy.Resource{}); err != nil {
		return nil, err
	}
	return s.list(ctx, ports.TaskFilter{AssigneeID: actor.ID})
}

func (s *taskService) ListByProject(ctx context.Context, actor *domain.Actor, projectID string) ([]ports.TaskView, error) {
	if err := policy.Authorize(actor, policy.ActionTaskListProject, policy.Resource{}); err != nil {
		return nil, err
	}
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return nil, err
	}

	filter := ports.TaskFilter{ProjectID: projectID}
	if !actor.IsAdmin() {
		filter.AssigneeID = actor.ID
	}
	return s.list(ctx, filter)
}

func (s *taskService) Create(ctx context.Context, actor *domain.Actor, in ports.CreateTaskInput) (*ports.TaskView, error) {
	if err := policy.Authorize(actor, policy.ActionTaskCreate, policy.Resource{}); err != nil {
		return nil, err
	}
	if in.AssigneeID == "" {
		in.AssigneeID = actor.ID
	}
	return s.create(ctx, actor, in)
}

func (s *taskService) Assign(ctx context.Context, actor *domain.Actor, in ports.CreateTaskInput) (*ports.TaskView, error) {
	if err := policy.Authorize(actor, policy.ActionTaskCreate, policy.Resource{}); err != nil {
		return nil, err
	}
	if in.AssigneeID == "" {
		return nil, fmt.Errorf("%w: assignedTo is required", domain.ErrInvalidInput)
	}
	if in.ProjectID == "" {
		return nil, fmt.Errorf("%w: project is required", domain.ErrInvalidInput)
	}
	return s.create(ctx, actor, in)
}

func (s *taskService) create(ctx context.Context, actor *domain.Actor, in ports.CreateTaskInput) (*ports.TaskView, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	priority := domain.TaskPriority(in.Priority)
	if priority == "" {
		priority = domain.TaskPriorityMedium
	}
	if !priority.Valid() {
		return nil, fmt.Errorf("%w: priority must be one of low, medium, high", domain.ErrInvalidInput)
	}

	project, err := s.projects.FindByID(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}
	assignee, err := s.users.FindByID(ctx, in.AssigneeID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	created, err := s.tasks.Create(ctx, &domain.Task{
		Title:       title,
		Description: in.Description,
		ProjectID:   project.ID,
		AssigneeID:  assignee.ID,
		Status:      domain.TaskStatusTodo,
		Priority:    priority,
		Deadline:    in.Deadline,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	metrics.TasksCreatedTotal.WithLabelValues(string(created.Priority)).Inc()
	s.recorder.Record(ctx, domain.TaskCreatedActivity(actor.ID, created, now))

	s.log.Info().
		Str("task_id", created.ID).
		Str("project_id", project.ID).
		Str("assignee_id", assignee.ID).
		Msg("task created")

	return &ports.TaskView{
		Task:     created,
		Assignee: summaryOf(assignee),
		Project:  &domain.ProjectSummary{ID: project.ID, Name: project.Name},
	}, nil
}

// Update applies in to the task. Only admins may change the assignee; a
// status change is recorded only when the new status differs.
func (s *taskService) Update(ctx context.Context, actor *domain.Actor, id string, in ports.UpdateTaskInput) (*ports.TaskView, error) {
	if err := policy.Authenticated(actor); err != nil {
		return nil, err
	}

	t, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.ActionTaskUpdate, policy.TaskResource(t)); err != nil {
		return nil, err
	}

	if in.AssigneeID != nil && *in.AssigneeID != t.AssigneeID {
		if err := policy.Authorize(actor, policy.ActionTaskReassign, policy.TaskResource(t)); err != nil {
			return nil, err
		}
		assignee, err := s.users.FindByID(ctx, *in.AssigneeID)
		if err != nil {
			return nil, err
		}
		t.AssigneeID = assignee.ID
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", domain.ErrInvalidInput)
		}
		t.Title = title
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Priority != nil {
		priority := domain.TaskPriority(*in.Priority)
		if !priority.Valid() {
			return nil, fmt.Errorf("%w: priority must be one of low, medium, high", domain.ErrInvalidInput)
		}
		t.Priority = priority
	}
	switch {
	case in.ClearDeadline:
		t.Deadline = nil
	case in.Deadline != nil:
		t.Deadline = in.Deadline
	}

	oldStatus := t.Status
	if in.Status != nil {
		status := domain.TaskStatus(*in.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("%w: status must be one of todo, in-progress, done", domain.ErrInvalidInput)
		}
		t.Status = status
	}

	now := s.now().UTC()
	t.UpdatedAt = now
	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, err
	}

	if t.Status != oldStatus {
		metrics.TaskStatusChangesTotal.WithLabelValues(string(t.Status)).Inc()
		s.recorder.Record(ctx, domain.TaskStatusChangedActivity(actor.ID, t, now))
		s.log.Info().
			Str("task_id", t.ID).
			Str("from", string(oldStatus)).
			Str("to", string(t.Status)).
			Msg("task status changed")
	}

	views, err := s.views(ctx, []*domain.Task{t})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *taskService) Delete(ctx context.Context, actor *domain.Actor, id string) error {
	if err := policy.Authorize(actor, policy.ActionTaskDelete, policy.Resource{}); err != nil {
		return err
	}

	t, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, id); err != nil {
		return err
	}

	s.recorder.Record(ctx, domain.TaskDeletedActivity(actor.ID, t, s.now().UTC()))
	s.log.Info().Str("task_id", id).Msg("task deleted")
	return nil
}

func (s *taskService) list(ctx context.Context, filter ports.TaskFilter) ([]ports.TaskView, error) {
	tasks, err := s.tasks.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, tasks)
}

func (s *taskService) views(ctx context.Context, tasks []*domain.Task) ([]ports.TaskView, error) {
	userIDs := make([]string, 0, len(tasks))
	projectIDs := make([]string, 0, len(tasks))
	for _, t := range tasks {
		userIDs = append(userIDs, t.AssigneeID)
		projectIDs = append(projectIDs, t.ProjectID)
	}

	users, err := userDirectory(ctx, s.users, uniqueIDs(userIDs))
	if err != nil {
		return nil, err
	}
	projects, err := projectDirectory(ctx, s.projects, uniqueIDs(projectIDs))
	if err != nil {
		return nil, err
	}

	out := make([]ports.TaskView, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, ports.TaskView{
			Task:     t,
			Assignee: lookup(users, t.AssigneeID),
			Project:  lookup(projects, t.ProjectID),
		})
	}
	return out, nil
}

func summaryOf(u *domain.User) *domain.UserSummary {
	s := u.Summary()
	return &s
}

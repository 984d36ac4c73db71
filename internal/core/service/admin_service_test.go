package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/projecthub/api/internal/core/domain"
	"github.com/projecthub/api/internal/core/ports"
)

type adminFixture struct {
	svc      *AdminService
	users    *stubUserRepo
	projects *stubProjectRepo
	tasks    *stubTaskRepo
	cache    *stubStatsCache
}

func newAdminFixture(withCache bool) *adminFixture {
	f := &adminFixture{
		users:    newStubUserRepo(),
		projects: newStubProjectRepo(),
		tasks:    newStubTaskRepo(),
	}
	f.users.seed("admin", "Admin", domain.RoleAdmin)
	f.users.seed("alice", "Alice", domain.RoleUser)

	var cache ports.StatsCache
	if withCache {
		f.cache = &stubStatsCache{}
		cache = f.cache
	}
	f.svc = NewAdminService(f.users, f.projects, f.tasks, cache, zerolog.Nop())

	ctx := context.Background()
	_, _ = f.projects.Create(ctx, &domain.Project{Name: "A", Status: domain.ProjectStatusActive})
	_, _ = f.projects.Create(ctx, &domain.Project{Name: "B", Status: domain.ProjectStatusCompleted})
	for _, st := range []domain.TaskStatus{domain.TaskStatusTodo, domain.TaskStatusDone, domain.TaskStatusDone} {
		_, _ = f.tasks.Create(ctx, &domain.Task{Title: "t", Status: st})
	}
	return f
}

func TestStats_Counts(t *testing.T) {
	f := newAdminFixture(false)

	s, err := f.svc.Stats(context.Background(), adminActor("admin"))
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if s.Users != 2 || s.Projects != 2 || s.ActiveProjects != 1 || s.CompletedTasks != 2 {
		t.Errorf("stats = %+v", s)
	}
	if s.TasksByStatus[domain.TaskStatusInProgress] != 0 || s.TasksByStatus[domain.TaskStatusTodo] != 1 {
		t.Errorf("by status = %v", s.TasksByStatus)
	}
	if _, ok := s.TasksByStatus[domain.TaskStatusInProgress]; !ok {
		t.Error("every status should be present, even with zero tasks")
	}

	if _, err := f.svc.Stats(context.Background(), userActor("alice")); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("user Stats: err = %v, want ErrForbidden", err)
	}
}

func TestStats_CacheAside(t *testing.T) {
	f := newAdminFixture(true)
	ctx := context.Background()

	first, err := f.svc.Stats(ctx, adminActor("admin"))
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if f.cache.sets != 1 {
		t.Fatalf("cache sets = %d, want 1", f.cache.sets)
	}

	// A new task is invisible until the cached value expires.
	_, _ = f.tasks.Create(ctx, &domain.Task{Title: "late", Status: domain.TaskStatusDone})
	second, err := f.svc.Stats(ctx, adminActor("admin"))
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if second.CompletedTasks != first.CompletedTasks || f.cache.sets != 1 {
		t.Errorf("expected a cache hit, got %+v (sets=%d)", second, f.cache.sets)
	}
}

func TestStats_CacheErrorFallsThrough(t *testing.T) {
	f := newAdminFixture(true)
	f.cache.getErr = errStore

	s, err := f.svc.Stats(context.Background(), adminActor("admin"))
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if s.Projects != 2 {
		t.Errorf("projects = %d, want 2", s.Projects)
	}
}

func TestAssignRole(t *testing.T) {
	f := newAdminFixture(false)
	ctx := context.Background()

	u, err := f.svc.AssignRole(ctx, adminActor("admin"), "alice", "admin")
	if err != nil {
		t.Fatalf("AssignRole: %v", err)
	}
	if u.Role != domain.RoleAdmin {
		t.Errorf("role = %q, want admin", u.Role)
	}
	stored, _ := f.users.FindByID(ctx, "alice")
	if stored.Role != domain.RoleAdmin {
		t.Errorf("stored role = %q, want admin", stored.Role)
	}

	tests := []struct {
		name    string
		actor   *domain.Actor
		userID  string
		role    string
		wantErr error
	}{
		{"user caller", userActor("alice"), "admin", "user", domain.ErrForbidden},
		{"bad role", adminActor("admin"), "alice", "owner", domain.ErrInvalidInput},
		{"blank user", adminActor("admin"), "", "user", domain.ErrInvalidInput},
		{"unknown user", adminActor("admin"), "ghost", "user", domain.ErrUserNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.svc.AssignRole(ctx, tt.actor, tt.userID, tt.role); !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestListAndGetUsers(t *testing.T) {
	f := newAdminFixture(false)
	ctx := context.Background()

	users, err := f.svc.ListUsers(ctx, adminActor("admin"))
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 2 {
		t.Errorf("users = %d, want 2", len(users))
	}
	if _, err := f.svc.ListUsers(ctx, userActor("alice")); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("user ListUsers: err = %v, want ErrForbidden", err)
	}

	u, err := f.svc.GetUser(ctx, adminActor("admin"), "alice")
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if u.Name != "Alice" {
		t.Errorf("name = %q", u.Name)
	}
	if _, err := f.svc.GetUser(ctx, adminActor("admin"), "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("missing user: err = %v, want ErrUserNotFound", err)
	}
}

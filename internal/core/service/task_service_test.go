package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/projecthub/api/internal/core/domain"
	"github.com/projecthub/api/internal/core/ports"
)

type taskFixture struct {
	svc      ports.TaskService
	users    *stubUserRepo
	projects *stubProjectRepo
	tasks    *stubTaskRepo
	recorder *captureRecorder
}

func newTaskFixture() *taskFixture {
	f := &taskFixture{
		users:    newStubUserRepo(),
		projects: newStubProjectRepo(),
		tasks:    newStubTaskRepo(),
		recorder: &captureRecorder{},
	}
	f.users.seed("admin", "Admin", domain.RoleAdmin)
	f.users.seed("alice", "Alice", domain.RoleUser)
	f.users.seed("bob", "Bob", domain.RoleUser)
	f.svc = NewTaskService(f.tasks, f.projects, f.users, f.recorder, zerolog.Nop())
	return f
}

func (f *taskFixture) project(t *testing.T, name string, members ...string) *domain.Project {
	t.Helper()
	p, err := f.projects.Create(context.Background(), &domain.Project{
		Name:      name,
		OwnerID:   "admin",
		MemberIDs: append([]string{"admin"}, members...),
		Status:    domain.ProjectStatusActive,
	})
	if err != nil {
		t.Fatalf("seed project: %v", err)
	}
	return p
}

func (f *taskFixture) assign(t *testing.T, projectID, assignee, title string) *domain.Task {
	t.Helper()
	v, err := f.svc.Assign(context.Background(), adminActor("admin"), ports.CreateTaskInput{
		ProjectID:  projectID,
		AssigneeID: assignee,
		Title:      title,
	})
	if err != nil {
		t.Fatalf("Assign %s: %v", title, err)
	}
	return v.Task
}

func TestTaskCreate_DefaultsAndActivity(t *testing.T) {
	f := newTaskFixture()
	p := f.project(t, "Website")

	v, err := f.svc.Create(context.Background(), adminActor("admin"), ports.CreateTaskInput{
		ProjectID: p.ID,
		Title:     "Write copy",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if v.Task.AssigneeID != "admin" {
		t.Errorf("assignee = %q, want caller", v.Task.AssigneeID)
	}
	if v.Task.Status != domain.TaskStatusTodo || v.Task.Priority != domain.TaskPriorityMedium {
		t.Errorf("status/priority = %s/%s, want todo/medium", v.Task.Status, v.Task.Priority)
	}
	if v.Project == nil || v.Project.Name != "Website" || v.Assignee == nil || v.Assignee.Name != "Admin" {
		t.Errorf("view not populated: %+v", v)
	}

	if n := f.recorder.count(); n != 1 {
		t.Fatalf("activities = %d, want 1", n)
	}
	got := f.recorder.entries[0]
	if got.Kind != domain.ActivityTaskCreated || got.Action != `created task "Write copy"` {
		t.Errorf("activity = %+v", got)
	}
	if got.ActorID != "admin" || got.TaskID != v.Task.ID || got.ProjectID != p.ID {
		t.Errorf("activity references = %+v", got)
	}
}

func TestTaskCreate_Validation(t *testing.T) {
	f := newTaskFixture()
	p := f.project(t, "Website")
	ctx := context.Background()

	tests := []struct {
		name    string
		actor   *domain.Actor
		in      ports.CreateTaskInput
		wantErr error
	}{
		{"user forbidden", userActor("alice"), ports.CreateTaskInput{ProjectID: p.ID, Title: "x"}, domain.ErrForbidden},
		{"blank title", adminActor("admin"), ports.CreateTaskInput{ProjectID: p.ID, Title: " "}, domain.ErrInvalidInput},
		{"bad priority", adminActor("admin"), ports.CreateTaskInput{ProjectID: p.ID, Title: "x", Priority: "urgent"}, domain.ErrInvalidInput},
		{"unknown project", adminActor("admin"), ports.CreateTaskInput{ProjectID: "nope", Title: "x"}, domain.ErrProjectNotFound},
		{"unknown assignee", adminActor("admin"), ports.CreateTaskInput{ProjectID: p.ID, Title: "x", AssigneeID: "ghost"}, domain.ErrUserNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(ctx, tt.actor, tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
	if n := f.recorder.count(); n != 0 {
		t.Errorf("activities after failed creates = %d, want 0", n)
	}
}

func TestTaskAssign_RequiresAssigneeAndProject(t *testing.T) {
	f := newTaskFixture()
	p := f.project(t, "Website")
	ctx := context.Background()

	if _, err := f.svc.Assign(ctx, adminActor("admin"), ports.CreateTaskInput{ProjectID: p.ID, Title: "x"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("missing assignee: err = %v, want ErrInvalidInput", err)
	}
	if _, err := f.svc.Assign(ctx, adminActor("admin"), ports.CreateTaskInput{AssigneeID: "bob", Title: "x"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("missing project: err = %v, want ErrInvalidInput", err)
	}
}

func TestTaskUpdate_StatusActivity(t *testing.T) {
	f := newTaskFixture()
	p := f.project(t, "Website", "alice")
	task := f.assign(t, p.ID, "alice", "Draft")
	ctx := context.Background()
	base := f.recorder.count()

	if _, err := f.svc.Update(ctx, userActor("alice"), task.ID, ports.UpdateTaskInput{Status: strPtr("todo")}); err != nil {
		t.Fatalf("no-op Update: %v", err)
	}
	if n := f.recorder.count() - base; n != 0 {
		t.Fatalf("activities after same-status update = %d, want 0", n)
	}

	if _, err := f.svc.Update(ctx, userActor("alice"), task.ID, ports.UpdateTaskInput{Title: strPtr("Draft v2")}); err != nil {
		t.Fatalf("title Update: %v", err)
	}
	if n := f.recorder.count() - base; n != 0 {
		t.Fatalf("activities after title-only update = %d, want 0", n)
	}

	v, err := f.svc.Update(ctx, userActor("alice"), task.ID, ports.UpdateTaskInput{Status: strPtr("in-progress")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if v.Task.Status != domain.TaskStatusInProgress {
		t.Errorf("status = %s, want in-progress", v.Task.Status)
	}
	if n := f.recorder.count() - base; n != 1 {
		t.Fatalf("activities after status change = %d, want 1", n)
	}
	got := f.recorder.entries[base]
	if got.Kind != domain.ActivityTaskUpdated || got.Action != `changed task "Draft v2" to in-progress` {
		t.Errorf("activity = %+v", got)
	}

	if _, err := f.svc.Update(ctx, userActor("alice"), task.ID, ports.UpdateTaskInput{Status: strPtr("done")}); err != nil {
		t.Fatalf("Update done: %v", err)
	}
	if last := f.recorder.entries[len(f.recorder.entries)-1]; last.Kind != domain.ActivityTaskCompleted {
		t.Errorf("kind = %s, want task_completed", last.Kind)
	}
}

func TestTaskUpdate_Authorization(t *testing.T) {
	f := newTaskFixture()
	p := f.project(t, "Website", "alice", "bob")
	task := f.assign(t, p.ID, "alice", "Draft")
	ctx := context.Background()

	if _, err := f.svc.Update(ctx, userActor("bob"), task.ID, ports.UpdateTaskInput{Status: strPtr("done")}); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("other member: err = %v, want ErrForbidden", err)
	}
	if _, err := f.svc.Update(ctx, userActor("alice"), task.ID, ports.UpdateTaskInput{AssigneeID: strPtr("bob")}); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("assignee reassigning: err = %v, want ErrForbidden", err)
	}
	if _, err := f.svc.Update(ctx, userActor("alice"), task.ID, ports.UpdateTaskInput{Status: strPtr("blocked")}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("bad status: err = %v, want ErrInvalidInput", err)
	}
	if _, err := f.svc.Update(ctx, userActor("alice"), "missing", ports.UpdateTaskInput{}); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("missing task: err = %v, want ErrTaskNotFound", err)
	}

	v, err := f.svc.Update(ctx, adminActor("admin"), task.ID, ports.UpdateTaskInput{AssigneeID: strPtr("bob")})
	if err != nil {
		t.Fatalf("admin reassign: %v", err)
	}
	if v.Task.AssigneeID != "bob" || v.Assignee == nil || v.Assignee.Name != "Bob" {
		t.Errorf("reassigned view = %+v", v)
	}
	if _, err := f.svc.Update(ctx, userActor("alice"), task.ID, ports.UpdateTaskInput{Status: strPtr("done")}); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("former assignee: err = %v, want ErrForbidden", err)
	}
}

func TestTaskUpdate_Deadline(t *testing.T) {
	f := newTaskFixture()
	p := f.project(t, "Website", "alice")
	task := f.assign(t, p.ID, "alice", "Draft")
	ctx := context.Background()
	due := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	v, err := f.svc.Update(ctx, userActor("alice"), task.ID, ports.UpdateTaskInput{Deadline: &due})
	if err != nil {
		t.Fatalf("set deadline: %v", err)
	}
	if v.Task.Deadline == nil || !v.Task.Deadline.Equal(due) {
		t.Fatalf("deadline = %v, want %v", v.Task.Deadline, due)
	}
	if v.Task.Title != "Draft" || v.Task.Status != domain.TaskStatusTodo {
		t.Errorf("deadline-only update touched other fields: %+v", v.Task)
	}

	v, err = f.svc.Update(ctx, userActor("alice"), task.ID, ports.UpdateTaskInput{ClearDeadline: true})
	if err != nil {
		t.Fatalf("clear deadline: %v", err)
	}
	if v.Task.Deadline != nil {
		t.Fatalf("deadline = %v, want cleared", v.Task.Deadline)
	}
	stored, err := f.tasks.FindByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if stored.Deadline != nil {
		t.Errorf("stored deadline = %v, want cleared", stored.Deadline)
	}
}

func TestTaskUpdate_RequiresIdentity(t *testing.T) {
	f := newTaskFixture()
	p := f.project(t, "Website", "alice")
	task := f.assign(t, p.ID, "alice", "Draft")

	_, err := f.svc.Update(context.Background(), nil, task.ID, ports.UpdateTaskInput{Status: strPtr("done")})
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("nil actor: err = %v, want ErrUnauthenticated", err)
	}
}

// An assignee outside the project can still move the task, yet still cannot
// open the project itself.
func TestTaskUpdate_AssigneeOutsideProject(t *testing.T) {
	f := newTaskFixture()
	p := f.project(t, "Backend")
	task := f.assign(t, p.ID, "bob", "Ship it")
	ctx := context.Background()

	if _, err := f.svc.Update(ctx, userActor("bob"), task.ID, ports.UpdateTaskInput{Status: strPtr("done")}); err != nil {
		t.Fatalf("assignee Update: %v", err)
	}

	projects := NewProjectService(f.projects, f.users, f.tasks, zerolog.Nop())
	if _, err := projects.Get(ctx, userActor("bob"), p.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("project Get: err = %v, want ErrForbidden", err)
	}
}

func TestTaskListings(t *testing.T) {
	f := newTaskFixture()
	p1 := f.project(t, "One", "alice")
	p2 := f.project(t, "Two")
	f.assign(t, p1.ID, "alice", "a1")
	f.assign(t, p1.ID, "bob", "b1")
	f.assign(t, p2.ID, "alice", "a2")
	ctx := context.Background()

	mine, err := f.svc.ListMine(ctx, userActor("alice"))
	if err != nil {
		t.Fatalf("ListMine: %v", err)
	}
	if len(mine) != 2 || mine[0].Task.Title != "a2" {
		t.Errorf("ListMine = %d tasks, want 2 newest first", len(mine))
	}

	inProject, err := f.svc.ListByProject(ctx, userActor("alice"), p1.ID)
	if err != nil {
		t.Fatalf("ListByProject: %v", err)
	}
	if len(inProject) != 1 || inProject[0].Task.Title != "a1" {
		t.Errorf("user ListByProject = %+v, want only a1", inProject)
	}

	adminView, err := f.svc.ListByProject(ctx, adminActor("admin"), p1.ID)
	if err != nil {
		t.Fatalf("admin ListByProject: %v", err)
	}
	if len(adminView) != 2 {
		t.Errorf("admin ListByProject = %d, want 2", len(adminView))
	}

	if _, err := f.svc.ListByProject(ctx, userActor("alice"), "missing"); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Errorf("missing project: err = %v, want ErrProjectNotFound", err)
	}

	all, err := f.svc.ListAll(ctx, adminActor("admin"))
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("ListAll = %d, want 3", len(all))
	}
	if _, err := f.svc.ListAll(ctx, userActor("alice")); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("user ListAll: err = %v, want ErrForbidden", err)
	}
}

func TestTaskDelete(t *testing.T) {
	f := newTaskFixture()
	p := f.project(t, "Website", "alice")
	task := f.assign(t, p.ID, "alice", "Draft")
	ctx := context.Background()

	if err := f.svc.Delete(ctx, userActor("alice"), task.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("user Delete: err = %v, want ErrForbidden", err)
	}

	base := f.recorder.count()
	if err := f.svc.Delete(ctx, adminActor("admin"), task.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if n := f.recorder.count() - base; n != 1 {
		t.Fatalf("activities after delete = %d, want 1", n)
	}
	if got := f.recorder.entries[base]; got.Kind != domain.ActivityTaskDeleted || got.Action != `deleted task "Draft"` {
		t.Errorf("activity = %+v", got)
	}
	if err := f.svc.Delete(ctx, adminActor("admin"), task.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("second Delete: err = %v, want ErrTaskNotFound", err)
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/projecthub/api/internal/core/domain"
	"github.com/projecthub/api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu      sync.Mutex
	seq     int
	users   map[string]*domain.User
	findErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

func (r *stubUserRepo) seed(id, name string, role domain.Role) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := &domain.User{ID: id, Name: name, Email: id + "@example.com", Role: role}
	r.users[id] = u
	return cloneUser(u)
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	c := cloneUser(user)
	c.ID = fmt.Sprintf("u%d", r.seq)
	r.users[c.ID] = c
	return cloneUser(c), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

type stubProjectRepo struct {
	mu       sync.Mutex
	seq      int
	projects map[string]*domain.Project
	order    []string
}

func newStubProjectRepo() *stubProjectRepo {
	return &stubProjectRepo{projects: make(map[string]*domain.Project)}
}

func cloneProject(p *domain.Project) *domain.Project {
	c := *p
	c.MemberIDs = slices.Clone(p.MemberIDs)
	return &c
}

func (r *stubProjectRepo) Create(_ context.Context, p *domain.Project) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	c := cloneProject(p)
	c.ID = fmt.Sprintf("p%d", r.seq)
	r.projects[c.ID] = c
	r.order = append(r.order, c.ID)
	return cloneProject(c), nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, id string) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	return cloneProject(p), nil
}

func (r *stubProjectRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Project, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.projects[id]; ok {
			out = append(out, cloneProject(p))
		}
	}
	return out, nil
}

func (r *stubProjectRepo) ListForUser(_ context.Context, userID string) ([]*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Project, 0)
	for i := len(r.order) - 1; i >= 0; i-- {
		p, ok := r.projects[r.order[i]]
		if ok && p.HasMember(userID) {
			out = append(out, cloneProject(p))
		}
	}
	return out, nil
}

func (r *stubProjectRepo) ListAll(_ context.Context) ([]*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Project, 0)
	for i := len(r.order) - 1; i >= 0; i-- {
		if p, ok := r.projects[r.order[i]]; ok {
			out = append(out, cloneProject(p))
		}
	}
	return out, nil
}

func (r *stubProjectRepo) Update(_ context.Context, p *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.projects[p.ID]
	if !ok {
		return domain.ErrProjectNotFound
	}
	cur.Name, cur.Description, cur.Status, cur.Deadline, cur.UpdatedAt = p.Name, p.Description, p.Status, p.Deadline, p.UpdatedAt
	return nil
}

func (r *stubProjectRepo) AddMember(_ context.Context, projectID, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[projectID]
	if !ok {
		return false, domain.ErrProjectNotFound
	}
	if slices.Contains(p.MemberIDs, userID) {
		return false, nil
	}
	p.MemberIDs = append(p.MemberIDs, userID)
	return true, nil
}

func (r *stubProjectRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[id]; !ok {
		return domain.ErrProjectNotFound
	}
	delete(r.projects, id)
	return nil
}

func (r *stubProjectRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.projects)), nil
}

func (r *stubProjectRepo) CountByStatus(_ context.Context, status string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.projects {
		if p.Status == status {
			n++
		}
	}
	return n, nil
}

type stubTaskRepo struct {
	mu        sync.Mutex
	seq       int
	tasks     map[string]*domain.Task
	order     []string
	updates   int
	deleteErr error
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[string]*domain.Task)}
}

func cloneTask(t *domain.Task) *domain.Task {
	c := *t
	return &c
}

func (r *stubTaskRepo) Create(_ context.Context, t *domain.Task) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	c := cloneTask(t)
	c.ID = fmt.Sprintf("t%d", r.seq)
	r.tasks[c.ID] = c
	r.order = append(r.order, c.ID)
	return cloneTask(c), nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return cloneTask(t), nil
}

func (r *stubTaskRepo) List(_ context.Context, f ports.TaskFilter) ([]*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Task, 0)
	for i := len(r.order) - 1; i >= 0; i-- {
		t, ok := r.tasks[r.order[i]]
		if !ok {
			continue
		}
		if f.ProjectID != "" && t.ProjectID != f.ProjectID {
			continue
		}
		if f.AssigneeID != "" && t.AssigneeID != f.AssigneeID {
			continue
		}
		out = append(out, cloneTask(t))
	}
	return out, nil
}

func (r *stubTaskRepo) Update(_ context.Context, t *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.tasks[t.ID]
	if !ok {
		return domain.ErrTaskNotFound
	}
	c := cloneTask(t)
	c.ProjectID = cur.ProjectID
	r.tasks[t.ID] = c
	r.updates++
	return nil
}

func (r *stubTaskRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *stubTaskRepo) DeleteByProject(_ context.Context, projectID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return 0, r.deleteErr
	}
	var n int64
	for id, t := range r.tasks {
		if t.ProjectID == projectID {
			delete(r.tasks, id)
			n++
		}
	}
	return n, nil
}

func (r *stubTaskRepo) CountByStatus(_ context.Context) (map[domain.TaskStatus]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[domain.TaskStatus]int64)
	for _, t := range r.tasks {
		out[t.Status]++
	}
	return out, nil
}

type stubActivityRepo struct {
	mu        sync.Mutex
	seq       int
	entries   []*domain.Activity
	insertErr error
}

func (r *stubActivityRepo) Insert(_ context.Context, a *domain.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return r.insertErr
	}
	r.seq++
	c := *a
	c.ID = fmt.Sprintf("a%d", r.seq)
	r.entries = append(r.entries, &c)
	return nil
}

func (r *stubActivityRepo) List(_ context.Context, actorID string) ([]*domain.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Activity, 0, len(r.entries))
	for i := len(r.entries) - 1; i >= 0; i-- {
		e := r.entries[i]
		if actorID != "" && e.ActorID != actorID {
			continue
		}
		c := *e
		out = append(out, &c)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Recorder / cache stubs
// ---------------------------------------------------------------------------

type captureRecorder struct {
	mu      sync.Mutex
	entries []domain.Activity
}

func (r *captureRecorder) Record(_ context.Context, e domain.Activity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
}

func (r *captureRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

type stubStatsCache struct {
	stored *ports.DashboardStats
	getErr error
	sets   int
}

func (c *stubStatsCache) Get(_ context.Context) (*ports.DashboardStats, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.stored, nil
}

func (c *stubStatsCache) Set(_ context.Context, s *ports.DashboardStats) error {
	c.sets++
	c.stored = s
	return nil
}

var errStore = errors.New("store unavailable")

// ---------------------------------------------------------------------------
// Actors
// ---------------------------------------------------------------------------

func adminActor(id string) *domain.Actor { return &domain.Actor{ID: id, Role: domain.RoleAdmin} }
func userActor(id string) *domain.Actor  { return &domain.Actor{ID: id, Role: domain.RoleUser} }

package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/projecthub/api/internal/core/domain"
	"github.com/projecthub/api/internal/core/policy"
	"github.com/projecthub/api/internal/core/ports"
	"github.com/projecthub/api/internal/pkg/metrics"
)

// ActivityRecorder writes activity entries synchronously. Failures are
// logged and counted, never returned.
type ActivityRecorder struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
}

func NewActivityRecorder(repo ports.ActivityRepository, log zerolog.Logger) *ActivityRecorder {
	return &ActivityRecorder{repo: repo, log: log}
}

var _ ports.ActivityRecorder = (*ActivityRecorder)(nil)

func (r *ActivityRecorder) Record(ctx context.Context, entry domain.Activity) {
	if entry.ActorID == "" || entry.Action == "" {
		r.log.Warn().Str("kind", string(entry.Kind)).Msg("activity entry without actor or action skipped")
		return
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	// The triggering write has already committed; a cancelled request must
	// not take its audit entry with it.
	if err := r.repo.Insert(context.WithoutCancel(ctx), &entry); err != nil {
		metrics.ActivityRecordFailuresTotal.WithLabelValues("insert_failed").Inc()
		r.log.Warn().
			Err(err).
			Str("actor_id", entry.ActorID).
			Str("kind", string(entry.Kind)).
			Str("task_id", entry.TaskID).
			Msg("failed to record activity")
		return
	}
	metrics.ActivityRecordedTotal.WithLabelValues(string(entry.Kind)).Inc()
}

type activityService struct {
	repo     ports.ActivityRepository
	users    ports.UserRepository
	projects ports.ProjectRepository
}

func NewActivityService(
	repo ports.ActivityRepository,
	users ports.UserRepository,
	projects ports.ProjectRepository,
) ports.ActivityService {
	return &activityService{repo: repo, users: users, projects: projects}
}

func (s *activityService) List(ctx context.Context, actor *domain.Actor) ([]ports.ActivityView, error) {
	if err := policy.Authorize(actor, policy.ActionActivityRead, policy.Resource{}); err != nil {
		return nil, err
	}
	actorID := actor.ID
	if actor.IsAdmin() {
		actorID = ""
	}
	return s.list(ctx, actorID)
}

func (s *activityService) ListAll(ctx context.Context, actor *domain.Actor) ([]ports.ActivityView, error) {
	if err := policy.Authorize(actor, policy.ActionActivityReadAll, policy.Resource{}); err != nil {
		return nil, err
	}
	return s.list(ctx, "")
}

func (s *activityService) list(ctx context.Context, actorID string) ([]ports.ActivityView, error) {
	entries, err := s.repo.List(ctx, actorID)
	if err != nil {
		return nil, err
	}

	userIDs := make([]string, 0, len(entries))
	projectIDs := make([]string, 0, len(entries))
	for _, e := range entries {
		userIDs = append(userIDs, e.ActorID)
		projectIDs = append(projectIDs, e.ProjectID)
	}
	users, err := userDirectory(ctx, s.users, uniqueIDs(userIDs))
	if err != nil {
		return nil, err
	}
	projects, err := projectDirectory(ctx, s.projects, uniqueIDs(projectIDs))
	if err != nil {
		return nil, err
	}

	out := make([]ports.ActivityView, 0, len(entries))
	for _, e := range entries {
		out = append(out, ports.ActivityView{
			Activity: e,
			Actor:    lookup(users, e.ActorID),
			Project:  lookup(projects, e.ProjectID),
		})
	}
	return out, nil
}

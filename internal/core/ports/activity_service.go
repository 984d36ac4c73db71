package ports

import (
	"context"

	"github.com/projecthub/api/internal/core/domain"
)

// ActivityRecorder appends activity entries as a side effect of other
// writes. Record never reports failure to the caller.
type ActivityRecorder interface {
	Record(ctx context.Context, entry domain.Activity)
}

// ActivityView is an entry with its actor and project resolved.
type ActivityView struct {
	Activity *domain.Activity
	Actor    *domain.UserSummary
	Project  *domain.ProjectSummary
}

type ActivityService interface {
	// List returns the caller's own entries, or every entry for admins,
	// newest first.
	List(ctx context.Context, actor *domain.Actor) ([]ActivityView, error)
	// ListAll is the admin-only system-wide listing.
	ListAll(ctx context.Context, actor *domain.Actor) ([]ActivityView, error)
}

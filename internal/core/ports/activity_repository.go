package ports

import (
	"context"

	"github.com/projecthub/api/internal/core/domain"
)

// ActivityRepository is the append-only activity store. There is no update
// or delete.
type ActivityRepository interface {
	Insert(ctx context.Context, a *domain.Activity) error
	// List returns entries newest first. An empty actorID returns every entry.
	List(ctx context.Context, actorID string) ([]*domain.Activity, error)
}

package service

import (
	"context"
	"fmt"

	"github.com/projecthub/api/internal/core/domain"
	"github.com/projecthub/api/internal/core/ports"
)

// uniqueIDs flattens ids, dropping blanks and duplicates while keeping order.
func uniqueIDs(groups ...[]string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, g := range groups {
		for _, id := range g {
			if id == "" {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

func userDirectory(ctx context.Context, repo ports.UserRepository, ids []string) (map[string]domain.UserSummary, error) {
	dir := make(map[string]domain.UserSummary, len(ids))
	if len(ids) == 0 {
		return dir, nil
	}
	users, err := repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve users: %w", err)
	}
	for _, u := range users {
		dir[u.ID] = u.Summary()
	}
	return dir, nil
}

func projectDirectory(ctx context.Context, repo ports.ProjectRepository, ids []string) (map[string]domain.ProjectSummary, error) {
	dir := make(map[string]domain.ProjectSummary, len(ids))
	if len(ids) == 0 {
		return dir, nil
	}
	projects, err := repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve projects: %w", err)
	}
	for _, p := range projects {
		dir[p.ID] = p.Summary()
	}
	return dir, nil
}

func lookup[T any](dir map[string]T, id string) *T {
	v, ok := dir[id]
	if !ok {
		return nil
	}
	return &v
}

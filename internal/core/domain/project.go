package domain

import (
	"slices"
	"time"
)

// Conventional project states. The field itself is free-form.
const (
	ProjectStatusActive    = "active"
	ProjectStatusOnHold    = "on-hold"
	ProjectStatusCompleted = "completed"
)

// Project groups tasks. OwnerID is fixed at creation and is always part of
// MemberIDs.
type Project struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	OwnerID     string     `json:"owner"`
	MemberIDs   []string   `json:"members"`
	Status      string     `json:"status"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ProjectSummary is the subset of a project embedded in tasks and activity.
type ProjectSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (p *Project) Summary() ProjectSummary {
	return ProjectSummary{ID: p.ID, Name: p.Name}
}

// HasMember reports whether userID is the owner or in the member set.
func (p *Project) HasMember(userID string) bool {
	if userID == "" {
		return false
	}
	return p.OwnerID == userID || slices.Contains(p.MemberIDs, userID)
}

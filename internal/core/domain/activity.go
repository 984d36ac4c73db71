package domain

import (
	"fmt"
	"time"
)

// ActivityKind categorises an activity entry for clients that render it.
type ActivityKind string

const (
	ActivityTaskCreated   ActivityKind = "task_created"
	ActivityTaskUpdated   ActivityKind = "task_updated"
	ActivityTaskCompleted ActivityKind = "task_completed"
	ActivityTaskDeleted   ActivityKind = "task_deleted"
)

// Activity is an immutable audit record. Action is free text rendered
// verbatim by clients; ProjectID and TaskID are empty when absent.
type Activity struct {
	ID        string       `json:"id"`
	ActorID   string       `json:"user"`
	Kind      ActivityKind `json:"type"`
	Action    string       `json:"action"`
	ProjectID string       `json:"project,omitempty"`
	TaskID    string       `json:"task,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
}

func TaskCreatedActivity(actorID string, t *Task, at time.Time) Activity {
	return Activity{
		ActorID:   actorID,
		Kind:      ActivityTaskCreated,
		Action:    fmt.Sprintf(`created task "%s"`, t.Title),
		ProjectID: t.ProjectID,
		TaskID:    t.ID,
		CreatedAt: at,
	}
}

// TaskStatusChangedActivity describes a status change. Callers only emit it
// when the status actually changed.
func TaskStatusChangedActivity(actorID string, t *Task, at time.Time) Activity {
	kind := ActivityTaskUpdated
	if t.Status == TaskStatusDone {
		kind = ActivityTaskCompleted
	}
	return Activity{
		ActorID:   actorID,
		Kind:      kind,
		Action:    fmt.Sprintf(`changed task "%s" to %s`, t.Title, t.Status),
		ProjectID: t.ProjectID,
		TaskID:    t.ID,
		CreatedAt: at,
	}
}

func TaskDeletedActivity(actorID string, t *Task, at time.Time) Activity {
	return Activity{
		ActorID:   actorID,
		Kind:      ActivityTaskDeleted,
		Action:    fmt.Sprintf(`deleted task "%s"`, t.Title),
		ProjectID: t.ProjectID,
		TaskID:    t.ID,
		CreatedAt: at,
	}
}

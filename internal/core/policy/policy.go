// Package policy decides whether an actor may perform an action on a
// resource. Decisions are pure: they depend only on the actor's role and the
// ownership, membership and assignment fields of the resource.
//
// Rules are evaluated in order and the first match wins:
//
//	register, login           allowed for everyone
//	no actor                  denied (unauthenticated)
//	admin                     every admin action allowed
//	user, project/read        owner or member only
//	user, task/read|update    current assignee only
//	user, self-scoped actions allowed; the store filters by actor
//	anything else             denied
package policy

import (
	"fmt"
	"slices"

	"github.com/projecthub/api/internal/core/domain"
)

// Action names an operation guarded by the policy.
type Action string

const (
	ActionRegister      Action = "auth/register"
	ActionLogin         Action = "auth/login"
	ActionProfileRead   Action = "profile/read"
	ActionProfileUpdate Action = "profile/update"

	ActionProjectList      Action = "project/list"
	ActionProjectListAll   Action = "project/list-all"
	ActionProjectRead      Action = "project/read"
	ActionProjectCreate    Action = "project/create"
	ActionProjectUpdate    Action = "project/update"
	ActionProjectDelete    Action = "project/delete"
	ActionProjectAddMember Action = "project/add-member"

	ActionTaskListAll     Action = "task/list-all"
	ActionTaskListOwn     Action = "task/list-own"
	ActionTaskListProject Action = "task/list-project"
	ActionTaskRead        Action = "task/read"
	ActionTaskCreate      Action = "task/create"
	ActionTaskUpdate      Action = "task/update"
	ActionTaskReassign    Action = "task/reassign"
	ActionTaskDelete      Action = "task/delete"

	ActionActivityRead    Action = "activity/read"
	ActionActivityReadAll Action = "activity/read-all"

	ActionUserList   Action = "user/list"
	ActionUserRead   Action = "user/read"
	ActionRoleAssign Action = "user/assign-role"
	ActionStatsRead  Action = "stats/read"
)

// Decision is the outcome of a policy check.
type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// Reason describes why a check was denied. ReasonNone accompanies Allow.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonUnauthenticated
	ReasonAdminOnly
	ReasonNotMember
	ReasonNotAssignee
	ReasonNotPermitted
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonUnauthenticated:
		return "unauthenticated"
	case ReasonAdminOnly:
		return "admin role required"
	case ReasonNotMember:
		return "not a project owner or member"
	case ReasonNotAssignee:
		return "not the task assignee"
	case ReasonNotPermitted:
		return "action not permitted"
	default:
		return "unknown"
	}
}

// Result pairs a decision with the reason for a denial.
type Result struct {
	Decision Decision
	Reason   Reason
}

func (r Result) Allowed() bool { return r.Decision == Allow }

// Resource carries the ownership fields a decision may depend on. Actions
// that target no particular document use the zero value.
type Resource struct {
	OwnerID    string
	MemberIDs  []string
	AssigneeID string
}

func ProjectResource(p *domain.Project) Resource {
	return Resource{OwnerID: p.OwnerID, MemberIDs: p.MemberIDs}
}

func TaskResource(t *domain.Task) Resource {
	return Resource{AssigneeID: t.AssigneeID}
}

var publicActions = set(ActionRegister, ActionLogin)

var adminActions = set(
	ActionProfileRead, ActionProfileUpdate,
	ActionProjectList, ActionProjectListAll, ActionProjectRead, ActionProjectCreate,
	ActionProjectUpdate, ActionProjectDelete, ActionProjectAddMember,
	ActionTaskListAll, ActionTaskListOwn, ActionTaskListProject, ActionTaskRead,
	ActionTaskCreate, ActionTaskUpdate, ActionTaskReassign, ActionTaskDelete,
	ActionActivityRead, ActionActivityReadAll,
	ActionUserList, ActionUserRead, ActionRoleAssign, ActionStatsRead,
)

// Allowed for any authenticated user; results are filtered to the actor by
// the store layer.
var selfScopedActions = set(
	ActionProfileRead, ActionProfileUpdate,
	ActionProjectList,
	ActionTaskListOwn, ActionTaskListProject,
	ActionActivityRead,
)

func set(actions ...Action) map[Action]struct{} {
	m := make(map[Action]struct{}, len(actions))
	for _, a := range actions {
		m[a] = struct{}{}
	}
	return m
}

func has(m map[Action]struct{}, a Action) bool {
	_, ok := m[a]
	return ok
}

func allow() Result              { return Result{Decision: Allow} }
func deny(reason Reason) Result { return Result{Decision: Deny, Reason: reason} }

// Decide evaluates the rules in package order for actor performing action
// on res.
func Decide(actor *domain.Actor, action Action, res Resource) Result {
	if has(publicActions, action) {
		return allow()
	}
	if actor == nil || actor.ID == "" {
		return deny(ReasonUnauthenticated)
	}

	switch actor.Role {
	case domain.RoleAdmin:
		if has(adminActions, action) {
			return allow()
		}
		return deny(ReasonNotPermitted)
	case domain.RoleUser:
	default:
		return deny(ReasonNotPermitted)
	}

	switch action {
	case ActionProjectRead:
		if res.OwnerID == actor.ID || slices.Contains(res.MemberIDs, actor.ID) {
			return allow()
		}
		return deny(ReasonNotMember)
	case ActionTaskRead, ActionTaskUpdate:
		// Assignment alone grants access, even without project membership.
		if res.AssigneeID != "" && res.AssigneeID == actor.ID {
			return allow()
		}
		return deny(ReasonNotAssignee)
	}

	if has(selfScopedActions, action) {
		return allow()
	}
	if has(adminActions, action) {
		return deny(ReasonAdminOnly)
	}
	return deny(ReasonNotPermitted)
}

// Authenticated fails with ErrUnauthenticated when the request carries no
// identity. Services call it before loading a document whose own rule needs
// the document's fields.
func Authenticated(actor *domain.Actor) error {
	if actor == nil || actor.ID == "" {
		return domain.ErrUnauthenticated
	}
	return nil
}

// Authorize is Decide mapped onto the domain error taxonomy.
func Authorize(actor *domain.Actor, action Action, res Resource) error {
	r := Decide(actor, action, res)
	if r.Allowed() {
		return nil
	}
	if r.Reason == ReasonUnauthenticated {
		return domain.ErrUnauthenticated
	}
	return fmt.Errorf("%w: %s: %s", domain.ErrForbidden, action, r.Reason)
}

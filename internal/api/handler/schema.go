package handler

import (
	"time"

	"github.com/projecthub/api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"omitempty,oneof=user admin"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type updateProfileRequest struct {
	Name            *string `json:"name"            validate:"omitempty,min=1"`
	Email           *string `json:"email"           validate:"omitempty,email"`
	CurrentPassword string  `json:"currentPassword"`
	NewPassword     string  `json:"newPassword"     validate:"omitempty,min=6"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// --- Projects ---

type createProjectRequest struct {
	Name        string    `json:"name"        validate:"required"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Deadline    dateField `json:"deadline"    swaggertype:"string" format:"date"`
}

type updateProjectRequest struct {
	Name        *string   `json:"name"        validate:"omitempty,min=1"`
	Description *string   `json:"description"`
	Status      *string   `json:"status"`
	Deadline    dateField `json:"deadline"    swaggertype:"string" format:"date"`
}

type addMemberRequest struct {
	UserID string `json:"userId" validate:"required"`
}

type projectResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Owner       *domain.UserSummary  `json:"owner"`
	Members     []domain.UserSummary `json:"members"`
	Status      string               `json:"status"`
	Deadline    *time.Time           `json:"deadline,omitempty"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

// --- Tasks ---

type createTaskRequest struct {
	Title       string    `json:"title"       validate:"required"`
	Description string    `json:"description"`
	AssignedTo  string    `json:"assignedTo"`
	Priority    string    `json:"priority"    validate:"omitempty,oneof=low medium high"`
	Deadline    dateField `json:"deadline"    swaggertype:"string" format:"date"`
}

type assignTaskRequest struct {
	Title       string    `json:"title"       validate:"required"`
	Description string    `json:"description"`
	Project     string    `json:"project"     validate:"required"`
	AssignedTo  string    `json:"assignedTo"  validate:"required"`
	Priority    string    `json:"priority"    validate:"omitempty,oneof=low medium high"`
	Deadline    dateField `json:"deadline"    swaggertype:"string" format:"date"`
}

type updateTaskRequest struct {
	Title       *string   `json:"title"       validate:"omitempty,min=1"`
	Description *string   `json:"description"`
	AssignedTo  *string   `json:"assignedTo"  validate:"omitempty,min=1"`
	Status      *string   `json:"status"      validate:"omitempty,oneof=todo in-progress done"`
	Priority    *string   `json:"priority"    validate:"omitempty,oneof=low medium high"`
	Deadline    dateField `json:"deadline"    swaggertype:"string" format:"date"`
}

type taskResponse struct {
	ID          string                 `json:"id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Project     *domain.ProjectSummary `json:"project"`
	AssignedTo  *domain.UserSummary    `json:"assignedTo"`
	Status      domain.TaskStatus      `json:"status"`
	Priority    domain.TaskPriority    `json:"priority"`
	Deadline    *time.Time             `json:"deadline,omitempty"`
	CreatedAt   time.Time              `json:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt"`
}

// --- Activity ---

type activityResponse struct {
	ID        string                 `json:"id"`
	User      *domain.UserSummary    `json:"user"`
	Type      domain.ActivityKind    `json:"type"`
	Action    string                 `json:"action"`
	Project   *domain.ProjectSummary `json:"project,omitempty"`
	Task      string                 `json:"task,omitempty"`
	CreatedAt time.Time              `json:"createdAt"`
}

// --- Admin ---

type assignRoleRequest struct {
	UserID string `json:"userId" validate:"required"`
	Role   string `json:"role"   validate:"required,oneof=user admin"`
}

type messageResponse struct {
	Message string `json:"message"`
}

package handler

import (
	"github.com/projecthub/api/internal/core/ports"
)

// --- Request → Service input ---

func toRegisterInput(req registerRequest) ports.RegisterInput {
	return ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	}
}

func toUpdateProfileInput(req updateProfileRequest) ports.UpdateProfileInput {
	return ports.UpdateProfileInput{
		Name:            req.Name,
		Email:           req.Email,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	}
}

func toCreateProjectInput(req createProjectRequest) ports.CreateProjectInput {
	return ports.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		Deadline:    req.Deadline.Value,
	}
}

func toUpdateProjectInput(req updateProjectRequest) ports.UpdateProjectInput {
	return ports.UpdateProjectInput{
		Name:          req.Name,
		Description:   req.Description,
		Status:        req.Status,
		Deadline:      req.Deadline.Value,
		ClearDeadline: req.Deadline.cleared(),
	}
}

func toCreateTaskInput(projectID string, req createTaskRequest) ports.CreateTaskInput {
	return ports.CreateTaskInput{
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		AssigneeID:  req.AssignedTo,
		Priority:    req.Priority,
		Deadline:    req.Deadline.Value,
	}
}

func toAssignTaskInput(req assignTaskRequest) ports.CreateTaskInput {
	return ports.CreateTaskInput{
		ProjectID:   req.Project,
		Title:       req.Title,
		Description: req.Description,
		AssigneeID:  req.AssignedTo,
		Priority:    req.Priority,
		Deadline:    req.Deadline.Value,
	}
}

func toUpdateTaskInput(req updateTaskRequest) ports.UpdateTaskInput {
	return ports.UpdateTaskInput{
		Title:         req.Title,
		Description:   req.Description,
		AssigneeID:    req.AssignedTo,
		Status:        req.Status,
		Priority:      req.Priority,
		Deadline:      req.Deadline.Value,
		ClearDeadline: req.Deadline.cleared(),
	}
}

// --- Service result → HTTP response ---

func toProjectResponse(v *ports.ProjectView) projectResponse {
	p := v.Project
	return projectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Owner:       v.Owner,
		Members:     v.Members,
		Status:      p.Status,
		Deadline:    p.Deadline,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProjectResponses(views []ports.ProjectView) []projectResponse {
	out := make([]projectResponse, 0, len(views))
	for i := range views {
		out = append(out, toProjectResponse(&views[i]))
	}
	return out
}

func toTaskResponse(v *ports.TaskView) taskResponse {
	t := v.Task
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Project:     v.Project,
		AssignedTo:  v.Assignee,
		Status:      t.Status,
		Priority:    t.Priority,
		Deadline:    t.Deadline,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTaskResponses(views []ports.TaskView) []taskResponse {
	out := make([]taskResponse, 0, len(views))
	for i := range views {
		out = append(out, toTaskResponse(&views[i]))
	}
	return out
}

func toActivityResponses(views []ports.ActivityView) []activityResponse {
	out := make([]activityResponse, 0, len(views))
	for _, v := range views {
		a := v.Activity
		out = append(out, activityResponse{
			ID:        a.ID,
			User:      v.Actor,
			Type:      a.Kind,
			Action:    a.Action,
			Project:   v.Project,
			Task:      a.TaskID,
			CreatedAt: a.CreatedAt,
		})
	}
	return out
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/projecthub/api/internal/core/ports"
)

// TaskHandler handles HTTP requests for task operations.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// ListAll handles GET /tasks.
//
// @Summary      Every task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   taskResponse
// @Failure      403  {object}  errorResponse
// @Router       /tasks [get]
func (h *TaskHandler) ListAll(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	views, err := h.service.ListAll(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskResponses(views))
}

// ListMine handles GET /tasks/my-tasks.
//
// @Summary      Tasks assigned to the caller
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   taskResponse
// @Failure      401  {object}  errorResponse
// @Router       /tasks/my-tasks [get]
func (h *TaskHandler) ListMine(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	views, err := h.service.ListMine(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskResponses(views))
}

// ListByProject handles GET /tasks/project/:projectId.
//
// @Summary      Tasks in a project
// @Description  Admins see every task in the project; users see only their own.
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        projectId  path      string  true  "Project id"
// @Success      200        {array}   taskResponse
// @Failure      404        {object}  errorResponse
// @Router       /tasks/project/{projectId} [get]
func (h *TaskHandler) ListByProject(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	views, err := h.service.ListByProject(c.Request().Context(), actor, c.Param("projectId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskResponses(views))
}

// Create handles POST /tasks/project/:projectId.
//
// @Summary      Create a task in a project
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        projectId  path      string             true  "Project id"
// @Param        body       body      createTaskRequest  true  "Task details"
// @Success      201        {object}  taskResponse
// @Failure      400        {object}  errorResponse
// @Failure      403        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /tasks/project/{projectId} [post]
func (h *TaskHandler) Create(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	view, err := h.service.Create(c.Request().Context(), actor, toCreateTaskInput(c.Param("projectId"), req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toTaskResponse(view))
}

// Assign handles POST /admin/assign-task.
//
// @Summary      Create a task for a given user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      assignTaskRequest  true  "Task details"
// @Success      201   {object}  taskResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /admin/assign-task [post]
func (h *TaskHandler) Assign(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	var req assignTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	view, err := h.service.Assign(c.Request().Context(), actor, toAssignTaskInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toTaskResponse(view))
}

// Update handles PUT /tasks/:id.
//
// @Summary      Update a task
// @Description  Admins may change any field; the assignee may change everything except the assignee.
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Task id"
// @Param        body  body      updateTaskRequest  true  "Fields to change"
// @Success      200   {object}  taskResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	view, err := h.service.Update(c.Request().Context(), actor, c.Param("id"), toUpdateTaskInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskResponse(view))
}

// Delete handles DELETE /tasks/:id.
//
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "task deleted"})
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/projecthub/api/internal/core/ports"
)

type ActivityHandler struct {
	service ports.ActivityService
}

func NewActivityHandler(service ports.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// List handles GET /activity.
//
// @Summary      Activity log
// @Description  The caller's own entries, or every entry for admins, newest first.
// @Tags         activity
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   activityResponse
// @Failure      401  {object}  errorResponse
// @Router       /activity [get]
func (h *ActivityHandler) List(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	views, err := h.service.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toActivityResponses(views))
}

// ListAll handles GET /admin/activity.
//
// @Summary      Full activity log
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   activityResponse
// @Failure      403  {object}  errorResponse
// @Router       /admin/activity [get]
func (h *ActivityHandler) ListAll(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	views, err := h.service.ListAll(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toActivityResponses(views))
}

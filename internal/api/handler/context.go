package handler

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/projecthub/api/internal/api/middleware"
	"github.com/projecthub/api/internal/core/domain"
)

// currentActor returns the actor set by the Auth middleware. A missing actor
// means the route was registered without Auth; it fails closed.
func currentActor(c echo.Context) (*domain.Actor, error) {
	actor := middleware.ActorFrom(c)
	if actor == nil || actor.ID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return actor, nil
}

// bindAndValidate decodes the request body into req and runs its validate
// tags. Both failures surface as invalid input.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return fmt.Errorf("%w: malformed request body", domain.ErrInvalidInput)
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	return nil
}

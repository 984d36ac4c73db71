package middleware

import (
	"slices"

	"github.com/labstack/echo/v4"

	"github.com/projecthub/api/internal/core/domain"
)

// RequireRole rejects requests whose actor does not hold one of roles. It
// must run after Auth. Services still run their own policy checks.
func RequireRole(roles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor := ActorFrom(c)
			if actor == nil {
				return domain.ErrUnauthenticated
			}
			if !slices.Contains(roles, actor.Role) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/projecthub/api/internal/core/domain"
)

const actorKey = "actor"

// TokenParser verifies a bearer token and returns the identity it carries.
type TokenParser interface {
	Parse(raw string) (*domain.Actor, error)
}

// Auth validates the bearer token and stores the resulting actor in the
// request context.
func Auth(tokens TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			actor, err := tokens.Parse(strings.TrimSpace(parts[1]))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			SetActor(c, actor)
			return next(c)
		}
	}
}

// SetActor stores actor in c.
func SetActor(c echo.Context, actor *domain.Actor) {
	c.Set(actorKey, actor)
}

// ActorFrom returns the actor stored by Auth, or nil when the request is
// unauthenticated.
func ActorFrom(c echo.Context) *domain.Actor {
	actor, _ := c.Get(actorKey).(*domain.Actor)
	return actor
}

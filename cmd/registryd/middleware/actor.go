package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ActorKey is the context key for the requesting actor's identifier
	ActorKey ContextKey = "actor_id"
)

// ExtractActor extracts the X-Actor-ID header into the request context.
// Operations that require authorization compare this identifier against
// the asset's current owner.
func ExtractActor() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actorID := c.Request().Header.Get("X-Actor-ID")
			if actorID != "" {
				c.Set(string(ActorKey), actorID)
			}
			return next(c)
		}
	}
}

// RequireActor rejects requests without an X-Actor-ID header
func RequireActor() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actorID := c.Request().Header.Get("X-Actor-ID")
			if actorID == "" {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"error": "X-Actor-ID header is required",
				})
			}
			c.Set(string(ActorKey), actorID)
			return next(c)
		}
	}
}

// GetActor returns the actor identifier stored by ExtractActor, or ""
func GetActor(c echo.Context) string {
	if actorID, ok := c.Get(string(ActorKey)).(string); ok {
		return actorID
	}
	return ""
}

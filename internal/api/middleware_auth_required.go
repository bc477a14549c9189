package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired is the single gate for routes that act on behalf of a user.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	if _, ok := currentUser(c); ok {
		return c.Next()
	}

	user, err := handler.authenticateRequest(c)
	if err != nil {
		if strings.HasPrefix(c.Path(), "/api/") {
			return apiError(c, fiber.StatusUnauthorized, "unauthorized")
		}
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	c.Locals(contextUserKey, user)
	return c.Next()
}

// LoadCurrentUser resolves the session cookie when present so every page knows who is browsing.
// Invalid or expired cookies are cleared and the request continues anonymously.
func (handler *Handler) LoadCurrentUser(c *fiber.Ctx) error {
	if strings.TrimSpace(c.Cookies(authCookieName)) == "" {
		return c.Next()
	}

	user, err := handler.authenticateRequest(c)
	if err != nil {
		handler.clearAuthCookie(c)
		return c.Next()
	}
	c.Locals(contextUserKey, user)
	return c.Next()
}

package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"registro-backend/internal/engine"
	"registro-backend/internal/schema"
)

// AuthMiddleware returns a Fiber middleware that validates JWT tokens
// and sets the Session on the request.
func AuthMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return engine.UnauthorizedError("Missing auth token")
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return engine.UnauthorizedError("Invalid auth header format")
		}

		claims, err := ParseAccessToken(parts[1], secret)
		if err != nil {
			return engine.UnauthorizedError("Invalid or expired token")
		}

		c.Locals("session", &schema.Session{
			Account: claims.Subject,
			Role:    claims.Role,
		})

		return c.Next()
	}
}

// RequireAdmin is a Fiber middleware that checks the authenticated
// session has the Admin role.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, ok := c.Locals("session").(*schema.Session)
		if !ok || sess == nil {
			return engine.UnauthorizedError("Missing auth token")
		}
		if !sess.IsAdmin() {
			return engine.ForbiddenError("Admin access required")
		}
		return c.Next()
	}
}

// GetSession extracts the Session from a Fiber context.
func GetSession(c *fiber.Ctx) *schema.Session {
	sess, _ := c.Locals("session").(*schema.Session)
	return sess
}

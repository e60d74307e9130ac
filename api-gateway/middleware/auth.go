package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/pixelpour/storefront/pkg/auth"
)

// AuthMiddleware validates JWT tokens before the request reaches the
// storefront. The storefront re-checks the session itself; this just keeps
// garbage off the backend.
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization header required",
			})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid authorization header format",
			})
		}

		claims, err := auth.ValidateToken(parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("email", claims.Email)
		c.Locals("name", claims.Name)

		// Pass user info downstream
		c.Request().Header.Set("X-User-ID", claims.UserID)
		c.Request().Header.Set("X-User-Email", claims.Email)
		c.Request().Header.Set("X-User-Name", claims.Name)

		return c.Next()
	}
}

// OptionalAuthMiddleware validates token if present but doesn't require it.
// Used on the public catalog routes so rate limiting can key on the user.
func OptionalAuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Next()
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			if claims, err := auth.ValidateToken(parts[1]); err == nil {
				c.Locals("user_id", claims.UserID)
				c.Locals("email", claims.Email)
				c.Locals("name", claims.Name)
			}
		}

		return c.Next()
	}
}

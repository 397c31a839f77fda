package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"stamprally-backend/token"
)

// RequireSession validates the HMAC session token from the Authorization
// header and exposes the verified participant on the request context.
func RequireSession(issuer *token.Issuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token"})
		}

		if !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid header format"})
		}

		payload, err := issuer.Verify(header[len("Bearer "):])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		c.Locals("user_id", payload.UserID)
		c.Locals("display_name", payload.DisplayName)
		return c.Next()
	}
}

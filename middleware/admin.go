package middleware

import (
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// RequireAdminKey guards administrative endpoints. The plaintext key from
// the Authorization header is checked against the bcrypt hash configured in
// ADMIN_KEY_HASH.
func RequireAdminKey(c *fiber.Ctx) error {
	hash := os.Getenv("ADMIN_KEY_HASH")
	if hash == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Admin access not configured"})
	}

	header := c.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing admin key"})
	}

	key := header[len("Bearer "):]
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid admin key"})
	}

	return c.Next()
}

package controllers

import "github.com/gofiber/fiber/v2"

// errorJSON writes the shared error envelope with a stable machine code.
func errorJSON(c *fiber.Ctx, status int, message, code string) error {
	body := fiber.Map{
		"ok":      false,
		"error":   "Error",
		"message": message,
	}
	if code != "" {
		body["error_code"] = code
	}
	return c.Status(status).JSON(body)
}

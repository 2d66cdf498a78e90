package handlers

import "github.com/gofiber/fiber/v2"

// respond writes the uniform success envelope.
func respond(c *fiber.Ctx, status int, data any, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"data":    data,
		"message": message,
	})
}

package utils

import "github.com/gofiber/fiber/v2"

func JSONError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"status": "error", "message": msg})
}

func JSONValidationError(c *fiber.Ctx, status int, msg string, errs []ValidationError) error {
	return c.Status(status).JSON(fiber.Map{"status": "error", "message": msg, "errors": errs})
}

// Truncate cuts s to at most n characters.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

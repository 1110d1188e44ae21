package handlers

import "github.com/gofiber/fiber/v2"

// serverError sends the 500 envelope, attaching raw error detail only in
// development mode.
func serverError(c *fiber.Ctx, dev bool, message string, err error) error {
	body := fiber.Map{
		"success": false,
		"message": message,
	}
	if dev && err != nil {
		body["error"] = err.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(body)
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

package api

import "github.com/gofiber/fiber/v2"

// JSONOnly rejects write requests whose body is not JSON.
func JSONOnly(c *fiber.Ctx) error {
	switch c.Method() {
	case fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch:
		if !c.Is("json") {
			return apiError(c, fiber.StatusUnsupportedMediaType, "content type must be application/json")
		}
	}
	return c.Next()
}

package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// VersionMiddleware records the client's requested X-Api-Version and
// answers with the version the service runs.
func VersionMiddleware(current string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requested := c.Get("X-Api-Version", current)

		// Support version aliases
		if requested == "1.0" || requested == "1" {
			requested = "1.0.0"
		}

		c.Locals("apiVersion", requested)
		c.Set("X-Api-Version", current)

		return c.Next()
	}
}

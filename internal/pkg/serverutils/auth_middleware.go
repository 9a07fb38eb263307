package serverutils

import (
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware guards the API with a static bearer token from
// API_TOKEN. When the variable is unset, all requests pass; useful for
// local development and tests.
func AuthMiddleware() fiber.Handler {
	token := os.Getenv("API_TOKEN")

	return func(ctx *fiber.Ctx) error {
		if token == "" {
			return ctx.Next()
		}

		header := ctx.Get("Authorization")
		presented := strings.TrimPrefix(header, "Bearer ")
		if presented == "" || presented != token {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Invalid or missing token"))
		}
		return ctx.Next()
	}
}

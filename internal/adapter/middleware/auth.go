package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/palazzem/cash-register/internal/core/security"
)

// Protected only lets through requests carrying the admin key whose hash is
// keyHash.
func Protected(keyHash string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Get Token from Header
		authHeader := c.Get(fiber.HeaderAuthorization) // "Bearer cr_admin_..."
		if authHeader == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"detail": "Authentication credentials were not provided."})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"detail": "Invalid Header Format"})
		}

		// 2. Compare hashes, never the plain key
		if !security.ValidateKey(parts[1], keyHash) {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"detail": "Invalid API Key"})
		}

		c.Locals("role", "admin")
		return c.Next()
	}
}

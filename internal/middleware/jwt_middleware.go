package middleware

import (
	"strings"

	"linkbio/internal/services"
	"linkbio/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// UserIDKey is the locals key under which AuthRequired stores the caller's id.
const UserIDKey = "user_id"

// userIDClaim is the JWT payload key carrying the caller's id.
const userIDClaim = "userId"

// AuthRequired is a Fiber middleware that checks for a valid bearer token and
// attaches the resolved user id to the request context. OPTIONS preflight
// requests pass through unauthenticated.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodOptions {
			return c.Next()
		}

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "No token provided",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "No token provided",
			})
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			logger.L().Warn("JWT validation failed", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid token or token expired",
			})
		}

		// Numeric JSON claims decode as float64.
		rawID, ok := claims[userIDClaim].(float64)
		if !ok || rawID <= 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid token or token expired",
			})
		}

		c.Locals(UserIDKey, uint(rawID))

		return c.Next()
	}
}

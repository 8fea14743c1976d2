package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/gatherly/gatherly-backend/internal/models"
	"github.com/gatherly/gatherly-backend/internal/repository"
	"github.com/gatherly/gatherly-backend/pkg/jwt"
)

// AuthMiddleware validates the bearer token and loads the active account
// behind it. Handlers downstream read the user from c.Locals("user");
// disabled accounts are cut off here regardless of token validity.
func AuthMiddleware(tokenManager *jwt.TokenManager, userRepo *repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Authorization header is required"))
		}

		claims, err := tokenManager.ValidateToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid or expired token"))
		}

		userIDFloat, ok := claims["user_id"].(float64)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid token claims"))
		}

		user, err := userRepo.GetActiveByID(uint(userIDFloat))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Account not found or deactivated"))
		}

		c.Locals("user", user)
		c.Locals("userID", user.ID)

		return c.Next()
	}
}

// RequireRoles gates a route to the given roles; run it after AuthMiddleware.
func RequireRoles(roles ...models.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals("user").(*models.User)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Authentication required"))
		}

		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse("Insufficient permissions"))
	}
}

// extractToken reads the bearer token from the Authorization header, or
// from the token query parameter for websocket upgrades where browsers
// cannot set headers.
func extractToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return c.Query("token")
}

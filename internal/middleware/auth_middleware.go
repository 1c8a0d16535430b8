package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/workshops-backend/internal/models"
	"github.com/sefazor/workshops-backend/internal/repository"
	"go.uber.org/zap"
)

const userKey = "user"

type TokenVerifier interface {
	Verify(token string) (string, error)
}

type UserFinder interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// Auth authenticates the bearer token and reloads the user on every
// request, so blocking or deleting an account takes effect immediately.
func Auth(tokens TokenVerifier, users UserFinder, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("No token provided"))
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || strings.TrimSpace(tokenString) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid authorization header format"))
		}

		username, err := tokens.Verify(strings.TrimSpace(tokenString))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid token"))
		}

		user, err := users.GetByUsername(c.UserContext(), username)
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("User not found"))
		}
		if err != nil {
			logger.Error("auth user lookup failed", zap.String("username", username), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Internal server error"))
		}

		if user.IsBlocked.Bool() {
			return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse("Your account has been blocked"))
		}

		c.Locals(userKey, user)
		return c.Next()
	}
}

// RequireAdmin must run after Auth.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := CurrentUser(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
		}
		if !user.IsAdmin.Bool() {
			return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse("Admin access required"))
		}
		return c.Next()
	}
}

// CurrentUser returns the user attached by Auth.
func CurrentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(userKey).(*models.User)
	return user, ok && user != nil
}

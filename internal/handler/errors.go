package handler

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/workshops-backend/internal/middleware"
	"github.com/sefazor/workshops-backend/internal/models"
	"github.com/sefazor/workshops-backend/internal/service"
	"go.uber.org/zap"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrUnauthenticated), errors.Is(err, service.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, service.ErrBadRequest), errors.Is(err, service.ErrNoChange):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrNotModified):
		return fiber.StatusNotModified
	default:
		return fiber.StatusInternalServerError
	}
}

// writeError renders a service error as {message}. Causes are logged, never
// sent to the client.
func writeError(c *fiber.Ctx, logger *zap.Logger, err error) error {
	status := statusFor(err)

	message := "Internal server error"
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		message = svcErr.Message
	}

	if status == fiber.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err))
	}
	return c.Status(status).JSON(models.ErrorResponse(message))
}

func currentUser(c *fiber.Ctx) (*models.User, error) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, &service.Error{Kind: service.ErrUnauthenticated, Message: "User not authenticated"}
	}
	return user, nil
}

// pathParam returns the named route segment percent-decoded. Titles and
// categories routinely contain spaces and other escaped characters.
func pathParam(c *fiber.Ctx, name string) string {
	raw := c.Params(name)
	value, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return value
}

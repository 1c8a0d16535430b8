package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/workshops-backend/internal/models"
	"github.com/sefazor/workshops-backend/internal/service"
	"github.com/sefazor/workshops-backend/pkg/utils"
	"go.uber.org/zap"
)

type UserHandler struct {
	userService *service.UserService
	validator   *utils.Validator
	logger      *zap.Logger
}

func NewUserHandler(userService *service.UserService, validator *utils.Validator, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator,
		logger:      logger,
	}
}

func (h *UserHandler) Signup(c *fiber.Ctx) error {
	var req models.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	req.Username = strings.TrimSpace(req.Username)
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	user, err := h.userService.Signup(c.UserContext(), req)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.UserResponse{
		Message: "User created successfully",
		User:    user,
	})
}

// Signin answers 200 for every well-formed request. Clients read the message
// and the presence of a token to tell success from failure.
func (h *UserHandler) Signin(c *fiber.Ctx) error {
	var req models.SigninRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	auth, err := h.userService.Signin(c.UserContext(), req.Username, req.Password)
	if err != nil {
		if statusFor(err) == fiber.StatusInternalServerError {
			return writeError(c, h.logger, err)
		}
		return c.JSON(models.SigninResponse{Message: err.Error()})
	}

	return c.JSON(models.SigninResponse{
		Message: "Signin successful",
		Token:   auth.Token,
		User:    auth.User,
	})
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	var patch models.ProfilePatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	updated, err := h.userService.UpdateProfile(c.UserContext(), user, patch)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(models.UserResponse{
		Message: "Profile updated successfully",
		User:    updated,
	})
}

func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	var req models.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	if err := h.userService.ChangePassword(c.UserContext(), user, req.CurrentPassword, req.NewPassword); err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(models.MessageResponse{Message: "Password changed successfully"})
}

func (h *UserHandler) DeleteAccount(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	var req models.DeleteAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	if err := h.userService.DeleteAccount(c.UserContext(), user, req.Password); err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(models.MessageResponse{Message: "Account deleted successfully"})
}

func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.userService.ListUsers(c.UserContext())
	if err != nil {
		return writeError(c, h.logger, err)
	}
	if users == nil {
		users = []models.User{}
	}

	return c.JSON(models.UsersResponse{
		Message: "Users fetched successfully",
		Users:   users,
	})
}

func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	admin, err := currentUser(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	if err := h.userService.DeleteUser(c.UserContext(), admin, c.Params("id")); err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(models.MessageResponse{Message: "User deleted successfully"})
}

// ToggleBlockUser sets isBlocked when the body carries it and flips the
// current state otherwise.
func (h *UserHandler) ToggleBlockUser(c *fiber.Ctx) error {
	admin, err := currentUser(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	var req models.ToggleBlockRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
		}
	}

	var desired *bool
	if req.IsBlocked != nil {
		b := req.IsBlocked.Bool()
		desired = &b
	}

	user, err := h.userService.ToggleBlock(c.UserContext(), admin, c.Params("id"), desired)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	message := "User unblocked successfully"
	if user.IsBlocked.Bool() {
		message = "User blocked successfully"
	}
	return c.JSON(models.UserResponse{Message: message, User: user})
}

func (h *UserHandler) GrantCreateAccess(c *fiber.Ctx) error {
	var req models.GrantCreateAccessRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
		}
	}

	expiry, err := req.Expiry()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid expiry date"))
	}

	user, err := h.userService.GrantCreateAccess(c.UserContext(), c.Params("id"), expiry)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(models.UserResponse{Message: "Create access granted", User: user})
}

func (h *UserHandler) RevokeCreateAccess(c *fiber.Ctx) error {
	user, err := h.userService.RevokeCreateAccess(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(models.UserResponse{Message: "Create access revoked", User: user})
}

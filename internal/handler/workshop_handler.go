package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/workshops-backend/internal/models"
	"github.com/sefazor/workshops-backend/internal/service"
	"github.com/sefazor/workshops-backend/pkg/utils"
	"go.uber.org/zap"
)

type WorkshopHandler struct {
	workshopService *service.WorkshopService
	validator       *utils.Validator
	logger          *zap.Logger
}

func NewWorkshopHandler(workshopService *service.WorkshopService, validator *utils.Validator, logger *zap.Logger) *WorkshopHandler {
	return &WorkshopHandler{
		workshopService: workshopService,
		validator:       validator,
		logger:          logger,
	}
}

func (h *WorkshopHandler) CreateWorkshop(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	var req models.WorkshopRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	workshop, err := h.workshopService.CreateWorkshop(c.UserContext(), user, req)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.IDResponse{
		Message: "Workshop created successfully",
		ID:      workshop.ID,
	})
}

func (h *WorkshopHandler) GetWorkshops(c *fiber.Ctx) error {
	workshops, err := h.workshopService.ListWorkshops(c.UserContext())
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(fiber.Map{
		"message":   "Workshops fetched successfully",
		"Workshops": workshops,
	})
}

func (h *WorkshopHandler) GetSortedWorkshops(c *fiber.Ctx) error {
	workshops, err := h.workshopService.ListSortedWorkshops(c.UserContext())
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(fiber.Map{
		"message": "Workshops fetched successfully",
		"details": workshops,
	})
}

func (h *WorkshopHandler) GetWorkshopsByCategory(c *fiber.Ctx) error {
	workshops, err := h.workshopService.ListByCategory(c.UserContext(), pathParam(c, "cat"))
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(fiber.Map{
		"message": "Workshops fetched successfully",
		"details": workshops,
	})
}

func (h *WorkshopHandler) GetMyWorkshops(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	workshops, err := h.workshopService.ListByOwner(c.UserContext(), user)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(fiber.Map{
		"message":   "Workshops fetched successfully",
		"workshops": workshops,
	})
}

func (h *WorkshopHandler) EditWorkshop(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	var patch models.WorkshopPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	workshop, err := h.workshopService.UpdateWorkshop(c.UserContext(), user, pathParam(c, "eventTitle"), patch)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(fiber.Map{
		"message":  "Workshop updated successfully",
		"workshop": workshop,
	})
}

func (h *WorkshopHandler) DeleteWorkshop(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	if err := h.workshopService.DeleteWorkshop(c.UserContext(), user, pathParam(c, "eventTitle")); err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(models.MessageResponse{Message: "Workshop deleted successfully"})
}

// FeedbackQRCode serves the workshop's feedback link as a PNG. The optional
// size query parameter sets the edge length in pixels.
func (h *WorkshopHandler) FeedbackQRCode(c *fiber.Ctx) error {
	png, err := h.workshopService.FeedbackQRCode(c.UserContext(), pathParam(c, "eventTitle"), c.QueryInt("size", 0))
	if err != nil {
		return writeError(c, h.logger, err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderCacheControl, "public, max-age=300")
	return c.Send(png)
}

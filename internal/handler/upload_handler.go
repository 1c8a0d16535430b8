package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/workshops-backend/internal/models"
	"github.com/sefazor/workshops-backend/internal/service"
	"go.uber.org/zap"
)

type UploadHandler struct {
	uploadService *service.UploadService
	logger        *zap.Logger
}

func NewUploadHandler(uploadService *service.UploadService, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
		logger:        logger,
	}
}

func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("No file uploaded"))
	}

	src, err := file.Open()
	if err != nil {
		h.logger.Error("failed to open uploaded file", zap.String("filename", file.Filename), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to read uploaded file"))
	}
	defer src.Close()

	url, err := h.uploadService.Upload(c.UserContext(), user, file.Filename, file.Header.Get(fiber.HeaderContentType), file.Size, src)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.UploadResponse{
		Message: "File uploaded successfully",
		URL:     url,
	})
}

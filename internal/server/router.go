package server

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sefazor/workshops-backend/internal/config"
	"github.com/sefazor/workshops-backend/internal/handler"
	"github.com/sefazor/workshops-backend/internal/middleware"
	"github.com/sefazor/workshops-backend/internal/models"
	"go.uber.org/zap"
)

const minBodyLimit = 4 << 20

type Handlers struct {
	User     *handler.UserHandler
	Workshop *handler.WorkshopHandler
	// Upload is nil when object storage is not configured.
	Upload *handler.UploadHandler
}

// NewRouter builds the Fiber app. auth must be the middleware.Auth handler.
func NewRouter(cfg *config.Config, h Handlers, auth fiber.Handler, logger *zap.Logger) *fiber.App {
	bodyLimit := minBodyLimit
	if limit := int(cfg.R2.MaxUploadSize) + (1 << 20); h.Upload != nil && limit > bodyLimit {
		bodyLimit = limit
	}

	app := fiber.New(fiber.Config{
		AppName:      "workshops-backend",
		BodyLimit:    bodyLimit,
		ErrorHandler: errorHandler(logger),
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE",
		AllowCredentials: !strings.Contains(cfg.CORSAllowOrigins, "*"),
	}))
	if !cfg.IsProduction() {
		app.Use(fiberlogger.New())
	}
	if cfg.RateLimitMax > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimitMax,
			Expiration: cfg.RateLimitWindow,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse("Too many requests"))
			},
		}))
	}

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	admin := middleware.RequireAdmin()

	users := app.Group("/userApi")
	users.Post("/signup", h.User.Signup)
	users.Post("/signin", h.User.Signin)
	users.Put("/updateProfile", auth, h.User.UpdateProfile)
	users.Put("/changePassword", auth, h.User.ChangePassword)
	users.Delete("/deleteAccount", auth, h.User.DeleteAccount)
	users.Get("/allUsers", auth, admin, h.User.ListUsers)
	users.Delete("/deleteUser/:id", auth, admin, h.User.DeleteUser)
	users.Put("/toggleBlockUser/:id", auth, admin, h.User.ToggleBlockUser)
	users.Post("/grant-create-access/:id", auth, admin, h.User.GrantCreateAccess)
	users.Post("/revoke-create-access/:id", auth, admin, h.User.RevokeCreateAccess)

	workshops := app.Group("/workshopApi")
	workshops.Get("/getwks", h.Workshop.GetWorkshops)
	workshops.Get("/sortedgetwks", h.Workshop.GetSortedWorkshops)
	workshops.Get("/selectedwks/:cat", h.Workshop.GetWorkshopsByCategory)
	workshops.Get("/qrcode/:eventTitle", h.Workshop.FeedbackQRCode)
	workshops.Post("/create", auth, h.Workshop.CreateWorkshop)
	workshops.Get("/myworkshops", auth, h.Workshop.GetMyWorkshops)
	workshops.Put("/editwks/:eventTitle", auth, h.Workshop.EditWorkshop)
	workshops.Delete("/delwks/:eventTitle", auth, h.Workshop.DeleteWorkshop)

	if h.Upload != nil {
		app.Post("/uploadApi/upload", auth, h.Upload.Upload)
	}

	return app
}

// errorHandler is the catch-all for errors no handler rendered itself,
// including recovered panics and unknown routes.
func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		} else {
			logger.Error("unhandled error",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err))
		}

		return c.Status(code).JSON(models.ErrorResponse(message))
	}
}

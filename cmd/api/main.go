package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/sefazor/workshops-backend/internal/config"
	"github.com/sefazor/workshops-backend/internal/handler"
	"github.com/sefazor/workshops-backend/internal/middleware"
	"github.com/sefazor/workshops-backend/internal/repository"
	"github.com/sefazor/workshops-backend/internal/server"
	"github.com/sefazor/workshops-backend/internal/service"
	"github.com/sefazor/workshops-backend/pkg/bcrypt"
	"github.com/sefazor/workshops-backend/pkg/database"
	"github.com/sefazor/workshops-backend/pkg/email"
	"github.com/sefazor/workshops-backend/pkg/jwt"
	"github.com/sefazor/workshops-backend/pkg/logger"
	"github.com/sefazor/workshops-backend/pkg/qrcode"
	"github.com/sefazor/workshops-backend/pkg/storage"
	"github.com/sefazor/workshops-backend/pkg/utils"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// A missing .env is fine outside development.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to load .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	zlog, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync()

	if err := run(cfg, zlog); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zlog *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Repositories
	userRepo, workshopRepo, closeStores, err := openStores(ctx, cfg, zlog)
	if err != nil {
		return err
	}
	defer closeStores()

	tokens := jwt.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	hasher := bcrypt.NewHasher(cfg.BcryptCost)

	// Optional integrations
	var mailer service.WelcomeMailer
	if cfg.Email.Enabled() {
		mailer = email.NewEmailService(cfg.Email.ResendAPIKey, cfg.Email.FromAddress, cfg.Email.FromName, zlog)
	} else {
		zlog.Info("email disabled: RESEND_API_KEY or EMAIL_FROM_ADDRESS not set")
	}

	var uploadService *service.UploadService
	if cfg.R2.Enabled() {
		r2Storage, err := storage.NewCloudflareStorage(ctx, storage.Options{
			AccountID:       cfg.R2.AccountID,
			AccessKeyID:     cfg.R2.AccessKeyID,
			SecretAccessKey: cfg.R2.SecretAccessKey,
			Bucket:          cfg.R2.Bucket,
			PublicURL:       cfg.R2.PublicURL,
			Endpoint:        cfg.R2.Endpoint,
			Region:          cfg.R2.Region,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize object storage: %w", err)
		}
		uploadService = service.NewUploadService(r2Storage, cfg.R2.MaxUploadSize, zlog)
	} else {
		zlog.Info("uploads disabled: object storage not configured")
	}

	// Services
	userService := service.NewUserService(userRepo, hasher, tokens, mailer, zlog)
	workshopService := service.NewWorkshopService(workshopRepo, qrcode.NewQRService(), service.WorkshopOptions{
		RequireCreateAccess: cfg.RequireCreateAccess,
	}, zlog)

	if cfg.AdminUsername != "" {
		if err := userService.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
			return fmt.Errorf("failed to seed admin user: %w", err)
		}
	}

	// Handlers
	validator := utils.NewValidator()
	handlers := server.Handlers{
		User:     handler.NewUserHandler(userService, validator, zlog),
		Workshop: handler.NewWorkshopHandler(workshopService, validator, zlog),
	}
	if uploadService != nil {
		handlers.Upload = handler.NewUploadHandler(uploadService, zlog)
	}

	app := server.NewRouter(cfg, handlers, middleware.Auth(tokens, userRepo, zlog), zlog)

	errCh := make(chan error, 1)
	go func() {
		zlog.Info("server listening", zap.String("port", cfg.Port), zap.String("store", cfg.StoreDriver))
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zlog.Info("shutting down")
	return app.ShutdownWithTimeout(shutdownTimeout)
}

// openStores connects the configured backend and returns its repositories
// together with a function that releases the connection.
func openStores(ctx context.Context, cfg *config.Config, zlog *zap.Logger) (repository.UserRepository, repository.WorkshopRepository, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		db, err := database.NewPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		closeFn := func() {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
		}
		return repository.NewPostgresUserRepository(db), repository.NewPostgresWorkshopRepository(db), closeFn, nil

	case config.DriverMemory:
		zlog.Warn("using in-memory store; data is lost on restart")
		return repository.NewMemoryUserRepository(), repository.NewMemoryWorkshopRepository(), func() {}, nil

	default:
		client, db, err := database.NewMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, nil, nil, err
		}
		closeFn := func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := client.Disconnect(disconnectCtx); err != nil {
				zlog.Warn("mongo disconnect failed", zap.Error(err))
			}
		}
		return repository.NewMongoUserRepository(db), repository.NewMongoWorkshopRepository(db), closeFn, nil
	}
}

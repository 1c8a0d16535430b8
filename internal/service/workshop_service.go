package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sefazor/workshops-backend/internal/models"
	"github.com/sefazor/workshops-backend/internal/repository"
	"go.uber.org/zap"
)

type QRGenerator interface {
	Encode(content string, size int) ([]byte, error)
}

type WorkshopOptions struct {
	// RequireCreateAccess limits creation to admins and users holding an
	// unexpired create-access grant.
	RequireCreateAccess bool
}

type WorkshopService struct {
	workshopRepo repository.WorkshopRepository
	qr           QRGenerator
	opts         WorkshopOptions
	logger       *zap.Logger
	now          func() time.Time
}

func NewWorkshopService(workshopRepo repository.WorkshopRepository, qr QRGenerator, opts WorkshopOptions, logger *zap.Logger) *WorkshopService {
	return &WorkshopService{
		workshopRepo: workshopRepo,
		qr:           qr,
		opts:         opts,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *WorkshopService) CreateWorkshop(ctx context.Context, user *models.User, req models.WorkshopRequest) (*models.Workshop, error) {
	req.EventTitle = strings.TrimSpace(req.EventTitle)
	if req.EventTitle == "" {
		return nil, newError(ErrBadRequest, "Event title is required")
	}
	if err := authorizeWorkshopCreate(user, s.opts.RequireCreateAccess, s.now()); err != nil {
		return nil, err
	}

	exists, err := s.workshopRepo.TitleExists(ctx, req.EventTitle)
	if err != nil {
		return nil, serverError("Failed to check workshop title", err)
	}
	if exists {
		return nil, newError(ErrConflict, "Workshop with this title already exists")
	}

	workshop := req.NewWorkshop(uuid.NewString(), user.Username, s.now())
	if err := s.workshopRepo.Create(ctx, workshop); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, newError(ErrConflict, "Workshop with this title already exists")
		}
		return nil, serverError("Failed to create workshop", err)
	}

	s.logger.Info("workshop created", zap.String("eventTitle", workshop.EventTitle), zap.String("createdBy", workshop.CreatedBy))
	return workshop, nil
}

func (s *WorkshopService) ListWorkshops(ctx context.Context) ([]models.Workshop, error) {
	return s.list(ctx, repository.WorkshopQuery{})
}

func (s *WorkshopService) ListSortedWorkshops(ctx context.Context) ([]models.Workshop, error) {
	return s.list(ctx, repository.WorkshopQuery{SortByStartDate: true})
}

// ListByCategory returns an empty list, not an error, when nothing matches.
func (s *WorkshopService) ListByCategory(ctx context.Context, category string) ([]models.Workshop, error) {
	return s.list(ctx, repository.WorkshopQuery{Category: category, SortByStartDate: true})
}

func (s *WorkshopService) ListByOwner(ctx context.Context, user *models.User) ([]models.Workshop, error) {
	return s.list(ctx, repository.WorkshopQuery{CreatedBy: user.Username})
}

func (s *WorkshopService) list(ctx context.Context, q repository.WorkshopQuery) ([]models.Workshop, error) {
	workshops, err := s.workshopRepo.List(ctx, q)
	if err != nil {
		return nil, serverError("Failed to fetch workshops", err)
	}
	if workshops == nil {
		workshops = []models.Workshop{}
	}
	return workshops, nil
}

func (s *WorkshopService) GetWorkshop(ctx context.Context, title string) (*models.Workshop, error) {
	workshop, err := s.workshopRepo.GetByTitle(ctx, title)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, newError(ErrNotFound, "Workshop not found")
	}
	if err != nil {
		return nil, serverError("Failed to fetch workshop", err)
	}
	return workshop, nil
}

// UpdateWorkshop merges the supplied fields into the workshop identified by
// title. Only the creator or an admin may do so.
func (s *WorkshopService) UpdateWorkshop(ctx context.Context, user *models.User, title string, patch models.WorkshopPatch) (*models.Workshop, error) {
	workshop, err := s.GetWorkshop(ctx, title)
	if err != nil {
		return nil, err
	}
	if err := authorizeWorkshopMutation(user, workshop); err != nil {
		return nil, err
	}

	if !patch.Apply(workshop) {
		return nil, newError(ErrNotModified, "No changes were made to the workshop")
	}
	workshop.UpdatedAt = s.now()

	if err := s.workshopRepo.Update(ctx, workshop); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(ErrNotFound, "Workshop not found")
		}
		return nil, serverError("Failed to update workshop", err)
	}

	s.logger.Info("workshop updated", zap.String("eventTitle", title), zap.String("by", user.Username))
	return workshop, nil
}

// DeleteWorkshop removes the workshop. The existence check and the delete
// are separate store calls; losing that race is reported as a server error.
func (s *WorkshopService) DeleteWorkshop(ctx context.Context, user *models.User, title string) error {
	workshop, err := s.GetWorkshop(ctx, title)
	if err != nil {
		return err
	}
	if err := authorizeWorkshopMutation(user, workshop); err != nil {
		return err
	}

	deleted, err := s.workshopRepo.DeleteByTitle(ctx, title)
	if err != nil {
		return serverError("Failed to delete workshop", err)
	}
	if deleted == 0 {
		return newError(ErrServer, "Failed to delete workshop")
	}

	s.logger.Info("workshop deleted", zap.String("eventTitle", title), zap.String("by", user.Username))
	return nil
}

// FeedbackQRCode renders the workshop's feedback link as a PNG QR code.
func (s *WorkshopService) FeedbackQRCode(ctx context.Context, title string, size int) ([]byte, error) {
	workshop, err := s.GetWorkshop(ctx, title)
	if err != nil {
		return nil, err
	}
	if workshop.FeedbackLink == "" {
		return nil, newError(ErrBadRequest, "Workshop has no feedback link")
	}

	png, err := s.qr.Encode(workshop.FeedbackLink, size)
	if err != nil {
		return nil, serverError("Failed to generate QR code", err)
	}
	return png, nil
}

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

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, serverError("Failed to list users", err)
	}
	return users, nil
}

// ToggleBlock sets the target's block flag. A nil desired state flips the
// current value. Admins cannot block themselves.
func (s *UserService) ToggleBlock(ctx context.Context, admin *models.User, targetID string, desired *bool) (*models.User, error) {
	target, err := s.target(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target.ID == admin.ID {
		return nil, newError(ErrBadRequest, "You cannot block your own account")
	}

	blocked := !target.IsBlocked.Bool()
	if desired != nil {
		blocked = *desired
	}
	target.IsBlocked = models.Flag(blocked)
	target.UpdatedAt = s.now()

	if err := s.userRepo.Update(ctx, target); err != nil {
		return nil, s.updateError(err)
	}

	s.logger.Info("user block state changed",
		zap.String("admin", admin.Username),
		zap.String("username", target.Username),
		zap.Bool("blocked", blocked))
	return target, nil
}

// DeleteUser removes another user's account. Self-deletion goes through
// DeleteAccount instead.
func (s *UserService) DeleteUser(ctx context.Context, admin *models.User, targetID string) error {
	target, err := s.target(ctx, targetID)
	if err != nil {
		return err
	}
	if target.ID == admin.ID {
		return newError(ErrBadRequest, "You cannot delete your own account from the admin panel")
	}

	deleted, err := s.userRepo.Delete(ctx, target.ID)
	if err != nil {
		return serverError("Failed to delete user", err)
	}
	if deleted == 0 {
		return newError(ErrNotFound, "User not found")
	}

	s.logger.Info("user deleted by admin", zap.String("admin", admin.Username), zap.String("username", target.Username))
	return nil
}

func (s *UserService) GrantCreateAccess(ctx context.Context, targetID string, expiry *time.Time) (*models.User, error) {
	target, err := s.target(ctx, targetID)
	if err != nil {
		return nil, err
	}

	target.CanCreate = true
	target.CreateAccessExpiry = expiry
	target.UpdatedAt = s.now()
	if err := s.userRepo.Update(ctx, target); err != nil {
		return nil, s.updateError(err)
	}
	return target, nil
}

func (s *UserService) RevokeCreateAccess(ctx context.Context, targetID string) (*models.User, error) {
	target, err := s.target(ctx, targetID)
	if err != nil {
		return nil, err
	}

	target.CanCreate = false
	target.CreateAccessExpiry = nil
	target.UpdatedAt = s.now()
	if err := s.userRepo.Update(ctx, target); err != nil {
		return nil, s.updateError(err)
	}
	return target, nil
}

// EnsureAdmin makes sure an admin account exists for username. An existing
// user is promoted without touching its password.
func (s *UserService) EnsureAdmin(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	user, err := s.userRepo.GetByUsername(ctx, username)
	switch {
	case err == nil:
		if user.IsAdmin.Bool() {
			return nil
		}
		user.IsAdmin = true
		user.UpdatedAt = s.now()
		if err := s.userRepo.Update(ctx, user); err != nil {
			return s.updateError(err)
		}
		s.logger.Info("promoted existing user to admin", zap.String("username", username))
		return nil
	case !errors.Is(err, repository.ErrNotFound):
		return serverError("Failed to load user", err)
	}

	hash, err := s.hasher.HashPassword(password)
	if err != nil {
		return serverError("Failed to hash password", err)
	}
	now := s.now()
	admin := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		IsAdmin:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(ctx, admin); err != nil && !errors.Is(err, repository.ErrDuplicate) {
		return serverError("Failed to create admin", err)
	}
	s.logger.Info("admin user seeded", zap.String("username", username))
	return nil
}

func (s *UserService) target(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, newError(ErrNotFound, "User not found")
	}
	if err != nil {
		return nil, serverError("Failed to load user", err)
	}
	return user, nil
}

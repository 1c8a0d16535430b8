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

const welcomeMailTimeout = 30 * time.Second

type PasswordHasher interface {
	HashPassword(password string) (string, error)
	ComparePassword(hashedPassword, password string) error
}

type TokenIssuer interface {
	Issue(username string) (string, error)
}

type WelcomeMailer interface {
	SendWelcomeEmail(ctx context.Context, email, fullName string) error
}

type UserService struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	tokens   TokenIssuer
	mailer   WelcomeMailer
	logger   *zap.Logger
	now      func() time.Time
}

// NewUserService wires the account operations. mailer may be nil.
func NewUserService(userRepo repository.UserRepository, hasher PasswordHasher, tokens TokenIssuer, mailer WelcomeMailer, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		mailer:   mailer,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *UserService) Signup(ctx context.Context, req models.SignupRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, newError(ErrBadRequest, "Username and password are required")
	}

	exists, err := s.userRepo.UsernameExists(ctx, username)
	if err != nil {
		return nil, serverError("Failed to check username", err)
	}
	if exists {
		return nil, newError(ErrConflict, "User already exists")
	}

	hash, err := s.hasher.HashPassword(req.Password)
	if err != nil {
		return nil, serverError("Failed to hash password", err)
	}

	now := s.now()
	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		FullName:     req.FullName,
		Email:        req.Email,
		Department:   req.Department,
		Designation:  req.Designation,
		Bio:          req.Bio,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, newError(ErrConflict, "User already exists")
		}
		return nil, serverError("Failed to create user", err)
	}

	s.logger.Info("user signed up", zap.String("username", user.Username))
	s.sendWelcome(user)
	return user, nil
}

func (s *UserService) sendWelcome(user *models.User) {
	if s.mailer == nil || user.Email == "" {
		return
	}
	go func(email, fullName string) {
		ctx, cancel := context.WithTimeout(context.Background(), welcomeMailTimeout)
		defer cancel()
		if err := s.mailer.SendWelcomeEmail(ctx, email, fullName); err != nil {
			s.logger.Warn("welcome email failed", zap.String("email", email), zap.Error(err))
		}
	}(user.Email, user.FullName)
}

// Signin checks the credentials and issues a token. A blocked account is
// refused even with the right password.
func (s *UserService) Signin(ctx context.Context, username, password string) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, newError(ErrInvalidCredentials, "Invalid username or password")
	}
	if err != nil {
		return nil, serverError("Failed to load user", err)
	}

	if user.IsBlocked.Bool() {
		return nil, newError(ErrForbidden, "Your account has been blocked. Contact an administrator")
	}

	if err := s.hasher.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, newError(ErrInvalidCredentials, "Invalid username or password")
	}

	token, err := s.tokens.Issue(user.Username)
	if err != nil {
		return nil, serverError("Failed to issue token", err)
	}
	return &models.AuthResponse{Token: token, User: user}, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, user *models.User, patch models.ProfilePatch) (*models.User, error) {
	current, err := s.reload(ctx, user)
	if err != nil {
		return nil, err
	}
	if !patch.Apply(current) {
		return nil, newError(ErrNoChange, "No changes to update")
	}

	current.UpdatedAt = s.now()
	if err := s.userRepo.Update(ctx, current); err != nil {
		return nil, s.updateError(err)
	}
	return current, nil
}

func (s *UserService) ChangePassword(ctx context.Context, user *models.User, currentPassword, newPassword string) error {
	current, err := s.reload(ctx, user)
	if err != nil {
		return err
	}
	if err := s.hasher.ComparePassword(current.PasswordHash, currentPassword); err != nil {
		return newError(ErrInvalidCredentials, "Current password is incorrect")
	}

	hash, err := s.hasher.HashPassword(newPassword)
	if err != nil {
		return serverError("Failed to hash password", err)
	}
	current.PasswordHash = hash
	current.UpdatedAt = s.now()

	if err := s.userRepo.Update(ctx, current); err != nil {
		return s.updateError(err)
	}
	return nil
}

// DeleteAccount removes the caller's own record once the password is
// confirmed.
func (s *UserService) DeleteAccount(ctx context.Context, user *models.User, password string) error {
	current, err := s.reload(ctx, user)
	if err != nil {
		return err
	}
	if err := s.hasher.ComparePassword(current.PasswordHash, password); err != nil {
		return newError(ErrInvalidCredentials, "Incorrect password")
	}

	deleted, err := s.userRepo.Delete(ctx, current.ID)
	if err != nil {
		return serverError("Failed to delete account", err)
	}
	if deleted == 0 {
		return newError(ErrNotFound, "User not found")
	}

	s.logger.Info("account deleted", zap.String("username", current.Username))
	return nil
}

// reload fetches the stored record for the authenticated identity so that
// writes never start from a stale copy.
func (s *UserService) reload(ctx context.Context, user *models.User) (*models.User, error) {
	current, err := s.userRepo.GetByID(ctx, user.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, newError(ErrNotFound, "User not found")
	}
	if err != nil {
		return nil, serverError("Failed to load user", err)
	}
	return current, nil
}

func (s *UserService) updateError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return newError(ErrNotFound, "User not found")
	}
	return serverError("Failed to update user", err)
}

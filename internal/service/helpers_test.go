package service

import (
	"context"
	"testing"

	"github.com/sefazor/workshops-backend/internal/models"
	"github.com/sefazor/workshops-backend/internal/repository"
	"github.com/sefazor/workshops-backend/pkg/bcrypt"
	"github.com/sefazor/workshops-backend/pkg/jwt"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeMailer struct {
	sent chan string
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{sent: make(chan string, 4)}
}

func (m *fakeMailer) SendWelcomeEmail(ctx context.Context, email, fullName string) error {
	m.sent <- email
	return nil
}

type fixture struct {
	users     *UserService
	workshops *WorkshopService
	userRepo  *repository.MemoryUserRepository
	tokens    *jwt.Manager
}

func newFixture(t *testing.T, opts WorkshopOptions) *fixture {
	t.Helper()
	userRepo := repository.NewMemoryUserRepository()
	tokens := jwt.NewManager("test-secret", 0)
	return &fixture{
		users:     NewUserService(userRepo, bcrypt.NewHasher(4), tokens, nil, zap.NewNop()),
		workshops: NewWorkshopService(repository.NewMemoryWorkshopRepository(), stubQR{}, opts, zap.NewNop()),
		userRepo:  userRepo,
		tokens:    tokens,
	}
}

func (f *fixture) signup(t *testing.T, username, password string) *models.User {
	t.Helper()
	u, err := f.users.Signup(context.Background(), models.SignupRequest{Username: username, Password: password})
	require.NoError(t, err)
	return u
}

func (f *fixture) admin(t *testing.T, username string) *models.User {
	t.Helper()
	u := f.signup(t, username, "adminpw")
	u.IsAdmin = true
	require.NoError(t, f.userRepo.Update(context.Background(), u))
	return u
}

type stubQR struct{}

func (stubQR) Encode(content string, size int) ([]byte, error) {
	return []byte("png:" + content), nil
}

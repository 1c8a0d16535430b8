package middleware

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/workshops-backend/internal/models"
	"github.com/sefazor/workshops-backend/internal/repository"
	"github.com/sefazor/workshops-backend/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T) (*fiber.App, *jwt.Manager, *repository.MemoryUserRepository) {
	t.Helper()
	tokens := jwt.NewManager("test-secret", 0)
	users := repository.NewMemoryUserRepository()

	app := fiber.New()
	auth := Auth(tokens, users, zap.NewNop())
	app.Get("/me", auth, func(c *fiber.Ctx) error {
		user, ok := CurrentUser(c)
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendString(user.Username)
	})
	app.Get("/admin", auth, RequireAdmin(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app, tokens, users
}

func request(t *testing.T, app *fiber.App, path, authHeader string) int {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set(fiber.HeaderAuthorization, authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestAuth(t *testing.T) {
	app, tokens, users := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &models.User{ID: "1", Username: "alice"}))
	require.NoError(t, users.Create(ctx, &models.User{ID: "2", Username: "blocked", IsBlocked: true}))

	alice, err := tokens.Issue("alice")
	require.NoError(t, err)
	blocked, err := tokens.Issue("blocked")
	require.NoError(t, err)
	ghost, err := tokens.Issue("ghost")
	require.NoError(t, err)
	foreign, err := jwt.NewManager("other-secret", 0).Issue("alice")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", fiber.StatusUnauthorized},
		{"wrong scheme", "Token " + alice, fiber.StatusUnauthorized},
		{"empty bearer", "Bearer ", fiber.StatusUnauthorized},
		{"garbage token", "Bearer not-a-token", fiber.StatusUnauthorized},
		{"foreign signature", "Bearer " + foreign, fiber.StatusUnauthorized},
		{"unknown user", "Bearer " + ghost, fiber.StatusNotFound},
		{"blocked user", "Bearer " + blocked, fiber.StatusForbidden},
		{"valid", "Bearer " + alice, fiber.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, request(t, app, "/me", tc.header))
		})
	}
}

func TestAuth_BlockTakesEffectImmediately(t *testing.T) {
	app, tokens, users := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &models.User{ID: "1", Username: "alice"}))
	token, err := tokens.Issue("alice")
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, request(t, app, "/me", "Bearer "+token))

	require.NoError(t, users.Update(ctx, &models.User{ID: "1", Username: "alice", IsBlocked: true}))
	assert.Equal(t, fiber.StatusForbidden, request(t, app, "/me", "Bearer "+token))
}

func TestRequireAdmin(t *testing.T) {
	app, tokens, users := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &models.User{ID: "1", Username: "alice"}))
	require.NoError(t, users.Create(ctx, &models.User{ID: "2", Username: "root", IsAdmin: true}))

	alice, err := tokens.Issue("alice")
	require.NoError(t, err)
	root, err := tokens.Issue("root")
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusForbidden, request(t, app, "/admin", "Bearer "+alice))
	assert.Equal(t, fiber.StatusOK, request(t, app, "/admin", "Bearer "+root))
	assert.Equal(t, fiber.StatusUnauthorized, request(t, app, "/admin", ""))
}

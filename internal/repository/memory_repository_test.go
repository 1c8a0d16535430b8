package repository

import (
	"context"
	"testing"

	"github.com/sefazor/workshops-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	require.NoError(t, repo.Create(ctx, &models.User{ID: "1", Username: "alice"}))
	require.NoError(t, repo.Create(ctx, &models.User{ID: "2", Username: "bob"}))
	assert.ErrorIs(t, repo.Create(ctx, &models.User{ID: "3", Username: "alice"}), ErrDuplicate)
	assert.ErrorIs(t, repo.Create(ctx, &models.User{ID: "1", Username: "carol"}), ErrDuplicate)

	exists, err := repo.UsernameExists(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = repo.UsernameExists(ctx, "nobody")
	require.NoError(t, err)
	assert.False(t, exists)

	u, err := repo.GetByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, "2", u.ID)

	u.IsBlocked = true
	require.NoError(t, repo.Update(ctx, u))
	stored, err := repo.GetByID(ctx, "2")
	require.NoError(t, err)
	assert.True(t, stored.IsBlocked.Bool())

	assert.ErrorIs(t, repo.Update(ctx, &models.User{ID: "missing"}), ErrNotFound)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)

	n, err := repo.Delete(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = repo.Delete(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	_, err = repo.GetByUsername(ctx, "alice")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryUserRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()
	require.NoError(t, repo.Create(ctx, &models.User{ID: "1", Username: "alice"}))

	u, err := repo.GetByID(ctx, "1")
	require.NoError(t, err)
	u.IsAdmin = true

	again, err := repo.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.False(t, again.IsAdmin.Bool())
}

func TestMemoryWorkshopRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryWorkshopRepository()

	seed := []models.Workshop{
		{ID: "a", EventTitle: "Go", EventStDate: "2024-03-10", Category: []string{"Tech"}, CreatedBy: "alice"},
		{ID: "b", EventTitle: "Art", EventStDate: "2024-01-05", Category: []string{"Arts"}, CreatedBy: "bob"},
		{ID: "c", EventTitle: "AI", EventStDate: "2024-02-01", Category: []string{"Tech", "Research"}, CreatedBy: "alice"},
	}
	for i := range seed {
		require.NoError(t, repo.Create(ctx, &seed[i]))
	}
	assert.ErrorIs(t, repo.Create(ctx, &models.Workshop{ID: "d", EventTitle: "Go"}), ErrDuplicate)

	all, err := repo.List(ctx, WorkshopQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Art", "AI"}, titles(all))

	sorted, err := repo.List(ctx, WorkshopQuery{SortByStartDate: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Art", "AI", "Go"}, titles(sorted))

	tech, err := repo.List(ctx, WorkshopQuery{Category: "Tech", SortByStartDate: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"AI", "Go"}, titles(tech))

	none, err := repo.List(ctx, WorkshopQuery{Category: "Sports"})
	require.NoError(t, err)
	assert.Empty(t, none)

	mine, err := repo.List(ctx, WorkshopQuery{CreatedBy: "alice"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "AI"}, titles(mine))

	w, err := repo.GetByTitle(ctx, "Art")
	require.NoError(t, err)
	w.EventStTime = "2pm"
	require.NoError(t, repo.Update(ctx, w))
	w, err = repo.GetByTitle(ctx, "Art")
	require.NoError(t, err)
	assert.Equal(t, "2pm", w.EventStTime)

	assert.ErrorIs(t, repo.Update(ctx, &models.Workshop{EventTitle: "Nope"}), ErrNotFound)

	n, err := repo.DeleteByTitle(ctx, "Art")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = repo.DeleteByTitle(ctx, "Art")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	exists, err := repo.TitleExists(ctx, "Art")
	require.NoError(t, err)
	assert.False(t, exists)
}

func titles(ws []models.Workshop) []string {
	out := make([]string, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.EventTitle)
	}
	return out
}

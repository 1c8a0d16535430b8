package repository

import (
	"context"
	"errors"

	"github.com/sefazor/workshops-backend/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate key")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) (int64, error)
}

// WorkshopQuery narrows a workshop listing. Zero values mean "no filter".
type WorkshopQuery struct {
	Category  string
	CreatedBy string
	// SortByStartDate orders ascending by eventStDate.
	SortByStartDate bool
}

type WorkshopRepository interface {
	Create(ctx context.Context, workshop *models.Workshop) error
	GetByTitle(ctx context.Context, title string) (*models.Workshop, error)
	TitleExists(ctx context.Context, title string) (bool, error)
	List(ctx context.Context, q WorkshopQuery) ([]models.Workshop, error)
	Update(ctx context.Context, workshop *models.Workshop) error
	DeleteByTitle(ctx context.Context, title string) (int64, error)
}

var (
	_ UserRepository     = (*MongoUserRepository)(nil)
	_ UserRepository     = (*PostgresUserRepository)(nil)
	_ UserRepository     = (*MemoryUserRepository)(nil)
	_ WorkshopRepository = (*MongoWorkshopRepository)(nil)
	_ WorkshopRepository = (*PostgresWorkshopRepository)(nil)
	_ WorkshopRepository = (*MemoryWorkshopRepository)(nil)
)

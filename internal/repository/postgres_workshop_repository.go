package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/sefazor/workshops-backend/internal/models"
	"gorm.io/gorm"
)

// PostgresWorkshopRepository stores workshops with gorm. List fields live in
// jsonb columns, so category matching uses jsonb containment.
type PostgresWorkshopRepository struct {
	db *gorm.DB
}

func NewPostgresWorkshopRepository(db *gorm.DB) *PostgresWorkshopRepository {
	return &PostgresWorkshopRepository{db: db}
}

func (r *PostgresWorkshopRepository) Create(ctx context.Context, workshop *models.Workshop) error {
	err := r.db.WithContext(ctx).Create(workshop).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

func (r *PostgresWorkshopRepository) GetByTitle(ctx context.Context, title string) (*models.Workshop, error) {
	var workshop models.Workshop
	err := r.db.WithContext(ctx).Where("event_title = ?", title).First(&workshop).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &workshop, nil
}

func (r *PostgresWorkshopRepository) TitleExists(ctx context.Context, title string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Workshop{}).Where("event_title = ?", title).Count(&count).Error
	return count > 0, err
}

func (r *PostgresWorkshopRepository) List(ctx context.Context, q WorkshopQuery) ([]models.Workshop, error) {
	workshops := []models.Workshop{}
	err := r.db.WithContext(ctx).Model(&models.Workshop{}).Scopes(workshopFilter(q)).Find(&workshops).Error
	return workshops, err
}

// workshopFilter turns a WorkshopQuery into where and order clauses. The
// category is matched as a one-element jsonb array, so it is compared as a
// whole value.
func workshopFilter(q WorkshopQuery) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if q.Category != "" {
			contains, err := json.Marshal([]string{q.Category})
			if err != nil {
				tx.AddError(err)
				return tx
			}
			tx = tx.Where("category @> ?::jsonb", string(contains))
		}
		if q.CreatedBy != "" {
			tx = tx.Where("created_by = ?", q.CreatedBy)
		}
		if q.SortByStartDate {
			return tx.Order("event_st_date ASC")
		}
		return tx.Order("created_at ASC")
	}
}

func (r *PostgresWorkshopRepository) Update(ctx context.Context, workshop *models.Workshop) error {
	res := workshopUpdate(r.db.WithContext(ctx), workshop)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// workshopUpdate writes every column except the identity ones. Select("*")
// keeps zero values such as emptied lists.
func workshopUpdate(tx *gorm.DB, workshop *models.Workshop) *gorm.DB {
	return tx.Model(&models.Workshop{}).
		Where("id = ? AND event_title = ?", workshop.ID, workshop.EventTitle).
		Select("*").
		Omit("id", "event_title", "created_by", "created_at").
		Updates(workshop)
}

func (r *PostgresWorkshopRepository) DeleteByTitle(ctx context.Context, title string) (int64, error) {
	res := r.db.WithContext(ctx).Where("event_title = ?", title).Delete(&models.Workshop{})
	return res.RowsAffected, res.Error
}

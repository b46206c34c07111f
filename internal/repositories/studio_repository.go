package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"inkstudio/internal/models/db_models"
)

type StudioRepository interface {
	Create(ctx context.Context, studio *db_models.Studio) error
	FindByID(ctx context.Context, id string) (*db_models.Studio, error)
	List(ctx context.Context) ([]db_models.Studio, error)
	ListAll(ctx context.Context) ([]db_models.Studio, error)
	UpdateManagerPassword(ctx context.Context, id, hash string) error
}

type studioRepository struct {
	db *gorm.DB
}

func NewStudioRepository(db *gorm.DB) StudioRepository {
	return &studioRepository{db: db}
}

func (r *studioRepository) Create(ctx context.Context, studio *db_models.Studio) error {
	return r.db.WithContext(ctx).Create(studio).Error
}

func (r *studioRepository) FindByID(ctx context.Context, id string) (*db_models.Studio, error) {
	var studio db_models.Studio
	err := r.db.WithContext(ctx).First(&studio, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &studio, nil
}

// List returns id and name only, ordered by name.
func (r *studioRepository) List(ctx context.Context) ([]db_models.Studio, error) {
	var studios []db_models.Studio
	err := r.db.WithContext(ctx).
		Select("id", "name").
		Order("name ASC").
		Find(&studios).Error
	return studios, err
}

func (r *studioRepository) ListAll(ctx context.Context) ([]db_models.Studio, error) {
	var studios []db_models.Studio
	err := r.db.WithContext(ctx).Order("id ASC").Find(&studios).Error
	return studios, err
}

func (r *studioRepository) UpdateManagerPassword(ctx context.Context, id, hash string) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Studio{}).
		Where("id = ?", id).
		Update("manager_password", hash).Error
}

package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"inkstudio/internal/models/db_models"
)

type ArtistRepository interface {
	Create(ctx context.Context, artist *db_models.Artist) error
	FindByID(ctx context.Context, id string) (*db_models.Artist, error)
	// List returns artists ordered by name. A nil studioID lists every studio.
	List(ctx context.Context, studioID *string) ([]db_models.Artist, error)
}

type artistRepository struct {
	db *gorm.DB
}

func NewArtistRepository(db *gorm.DB) ArtistRepository {
	return &artistRepository{db: db}
}

func (r *artistRepository) Create(ctx context.Context, artist *db_models.Artist) error {
	return r.db.WithContext(ctx).Create(artist).Error
}

func (r *artistRepository) FindByID(ctx context.Context, id string) (*db_models.Artist, error) {
	var artist db_models.Artist
	err := r.db.WithContext(ctx).First(&artist, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &artist, nil
}

func (r *artistRepository) List(ctx context.Context, studioID *string) ([]db_models.Artist, error) {
	q := r.db.WithContext(ctx).Model(&db_models.Artist{})
	if studioID != nil {
		q = q.Where("studio_id = ?", *studioID)
	}
	var artists []db_models.Artist
	err := q.Order("name ASC").Order("id ASC").Find(&artists).Error
	return artists, err
}

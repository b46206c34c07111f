package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"inkstudio/internal/models/db_models"
)

// newestFirst orders rows by creation time and, inside one batch, by the
// reverse of insertion position.
const newestFirst = "images.created_at DESC, images.position DESC"

type ImageRepository interface {
	// CreateBatch inserts every row in one transaction or none of them.
	CreateBatch(ctx context.Context, images []db_models.Image) error
	ListByClient(ctx context.Context, clientID string, kind db_models.ImageKind) ([]db_models.Image, error)
	LatestByClient(ctx context.Context, clientID string, kind db_models.ImageKind) (*db_models.Image, error)
	ListWannadoByArtist(ctx context.Context, artistID string) ([]db_models.Image, error)
	// AllPaths returns the storage path of every image row.
	AllPaths(ctx context.Context) ([]string, error)
}

type imageRepository struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) CreateBatch(ctx context.Context, images []db_models.Image) error {
	if len(images) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range images {
			if err := tx.Create(&images[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *imageRepository) ListByClient(ctx context.Context, clientID string, kind db_models.ImageKind) ([]db_models.Image, error) {
	var images []db_models.Image
	err := r.db.WithContext(ctx).
		Where("client_id = ? AND kind = ?", clientID, kind).
		Order(newestFirst).
		Find(&images).Error
	return images, err
}

func (r *imageRepository) LatestByClient(ctx context.Context, clientID string, kind db_models.ImageKind) (*db_models.Image, error) {
	var image db_models.Image
	err := r.db.WithContext(ctx).
		Where("client_id = ? AND kind = ?", clientID, kind).
		Order(newestFirst).
		Take(&image).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &image, nil
}

func (r *imageRepository) ListWannadoByArtist(ctx context.Context, artistID string) ([]db_models.Image, error) {
	var images []db_models.Image
	err := r.db.WithContext(ctx).
		Where("artist_id = ? AND kind = ? AND client_id IS NULL", artistID, db_models.KindWannado).
		Order(newestFirst).
		Find(&images).Error
	return images, err
}

func (r *imageRepository) AllPaths(ctx context.Context) ([]string, error) {
	var paths []string
	err := r.db.WithContext(ctx).
		Model(&db_models.Image{}).
		Pluck("path", &paths).Error
	return paths, err
}

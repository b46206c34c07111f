package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"inkstudio/internal/models/db_models"
)

type ClientRepository interface {
	Create(ctx context.Context, client *db_models.Client) error
	FindByID(ctx context.Context, id string) (*db_models.Client, error)
	// AssignArtist overwrites the client's artist reference. It performs no
	// studio check; callers go through RelationshipService for that.
	AssignArtist(ctx context.Context, clientID, artistID string) error
	ListByArtist(ctx context.Context, artistID string) ([]db_models.Client, error)
	// List returns clients ordered by name. A nil studioID lists every studio.
	List(ctx context.Context, studioID *string) ([]db_models.Client, error)
}

type clientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, client *db_models.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

func (r *clientRepository) FindByID(ctx context.Context, id string) (*db_models.Client, error) {
	var client db_models.Client
	err := r.db.WithContext(ctx).First(&client, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) AssignArtist(ctx context.Context, clientID, artistID string) error {
	res := r.db.WithContext(ctx).
		Model(&db_models.Client{}).
		Where("id = ?", clientID).
		Update("artist_id", artistID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *clientRepository) ListByArtist(ctx context.Context, artistID string) ([]db_models.Client, error) {
	var clients []db_models.Client
	err := r.db.WithContext(ctx).
		Where("artist_id = ?", artistID).
		Order("name ASC").Order("id ASC").
		Find(&clients).Error
	return clients, err
}

func (r *clientRepository) List(ctx context.Context, studioID *string) ([]db_models.Client, error) {
	q := r.db.WithContext(ctx).Model(&db_models.Client{})
	if studioID != nil {
		q = q.Where("studio_id = ?", *studioID)
	}
	var clients []db_models.Client
	err := q.Order("name ASC").Order("id ASC").Find(&clients).Error
	return clients, err
}

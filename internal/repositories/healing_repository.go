package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"inkstudio/internal/models/db_models"
)

type HealingRepository interface {
	// CreateEntry inserts the entry and its images in one transaction.
	CreateEntry(ctx context.Context, entry *db_models.HealingEntry, images []db_models.Image) error
	FindEntryForClient(ctx context.Context, entryID, clientID string) (*db_models.HealingEntry, error)
	AddResponse(ctx context.Context, resp *db_models.HealingResponse) error
	// ListByArtist joins through the clients' current artist reference.
	ListByArtist(ctx context.Context, artistID string) ([]db_models.HealingEntry, error)
	ListByClient(ctx context.Context, clientID string) ([]db_models.HealingEntry, error)
	ListByStudio(ctx context.Context, studioID string) ([]db_models.HealingEntry, error)
}

type healingRepository struct {
	db *gorm.DB
}

func NewHealingRepository(db *gorm.DB) HealingRepository {
	return &healingRepository{db: db}
}

func (r *healingRepository) CreateEntry(ctx context.Context, entry *db_models.HealingEntry, images []db_models.Image) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Client", "Images", "Responses").Create(entry).Error; err != nil {
			return err
		}
		for i := range images {
			images[i].HealingEntryID = &entry.ID
			if err := tx.Create(&images[i]).Error; err != nil {
				return err
			}
		}
		entry.Images = images
		return nil
	})
}

func (r *healingRepository) FindEntryForClient(ctx context.Context, entryID, clientID string) (*db_models.HealingEntry, error) {
	var entry db_models.HealingEntry
	err := r.db.WithContext(ctx).
		Where("id = ? AND client_id = ?", entryID, clientID).
		Take(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *healingRepository) AddResponse(ctx context.Context, resp *db_models.HealingResponse) error {
	return r.db.WithContext(ctx).Create(resp).Error
}

func (r *healingRepository) ListByArtist(ctx context.Context, artistID string) ([]db_models.HealingEntry, error) {
	return r.list(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Joins("JOIN clients ON clients.id = healing_entries.client_id").
			Where("clients.artist_id = ?", artistID)
	})
}

func (r *healingRepository) ListByClient(ctx context.Context, clientID string) ([]db_models.HealingEntry, error) {
	return r.list(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("healing_entries.client_id = ?", clientID)
	})
}

func (r *healingRepository) ListByStudio(ctx context.Context, studioID string) ([]db_models.HealingEntry, error) {
	return r.list(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Joins("JOIN clients ON clients.id = healing_entries.client_id").
			Where("clients.studio_id = ?", studioID)
	})
}

// list loads entries newest-first with images in batch order and responses
// oldest-first.
func (r *healingRepository) list(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]db_models.HealingEntry, error) {
	var entries []db_models.HealingEntry
	err := r.db.WithContext(ctx).
		Model(&db_models.HealingEntry{}).
		Scopes(scope).
		Preload("Client").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("images.position ASC")
		}).
		Preload("Responses", func(db *gorm.DB) *gorm.DB {
			return db.Order("healing_responses.created_at ASC").Order("healing_responses.id ASC")
		}).
		Order("healing_entries.created_at DESC").
		Order("healing_entries.id DESC").
		Find(&entries).Error
	return entries, err
}

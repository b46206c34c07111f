package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"inkstudio/internal/models/db_models"
)

// SeedSet is one data.json import.
type SeedSet struct {
	Studios      []db_models.Studio
	Artists      []db_models.Artist
	Clients      []db_models.Client
	Appointments []db_models.Appointment
}

type SeedRepository interface {
	// Upsert writes the whole set in one transaction, replacing rows that
	// share an id.
	Upsert(ctx context.Context, set SeedSet) error
}

type seedRepository struct {
	db *gorm.DB
}

func NewSeedRepository(db *gorm.DB) SeedRepository {
	return &seedRepository{db: db}
}

var upsertByID = clause.OnConflict{
	Columns:   []clause.Column{{Name: "id"}},
	UpdateAll: true,
}

func (r *seedRepository) Upsert(ctx context.Context, set SeedSet) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Each model needs its own statement; a shared chain keeps the
		// first model's schema.
		if len(set.Studios) > 0 {
			if err := tx.Clauses(upsertByID).Create(&set.Studios).Error; err != nil {
				return err
			}
		}
		if len(set.Artists) > 0 {
			if err := tx.Clauses(upsertByID).Create(&set.Artists).Error; err != nil {
				return err
			}
		}
		if len(set.Clients) > 0 {
			if err := tx.Clauses(upsertByID).Create(&set.Clients).Error; err != nil {
				return err
			}
		}
		if len(set.Appointments) > 0 {
			if err := tx.Clauses(upsertByID).Create(&set.Appointments).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

package repositories

import (
	"context"

	"gorm.io/gorm"

	dbm "inkstudio/internal/models/db_models"
)

// OverviewRepository serves the manager dashboard. Every query is scoped to
// one studio and none of them are paginated.
type OverviewRepository interface {
	CountArtists(ctx context.Context, studioID string) (int64, error)
	CountClients(ctx context.Context, studioID string) (int64, error)
	CountUnassignedClients(ctx context.Context, studioID string) (int64, error)
	CountWannado(ctx context.Context, studioID string) (int64, error)
	CountHealingEntries(ctx context.Context, studioID string) (int64, error)
	// CountOpenHealing counts entries that have no artist response yet.
	CountOpenHealing(ctx context.Context, studioID string) (int64, error)

	// StudioWannado joins wannado images on artists.studio_id.
	StudioWannado(ctx context.Context, studioID string) ([]dbm.Image, error)
}

type overviewRepository struct {
	db *gorm.DB
}

func NewOverviewRepository(db *gorm.DB) OverviewRepository {
	return &overviewRepository{db: db}
}

func (r *overviewRepository) CountArtists(ctx context.Context, studioID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&dbm.Artist{}).
		Where("studio_id = ?", studioID).
		Count(&n).Error
	return n, err
}

func (r *overviewRepository) CountClients(ctx context.Context, studioID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&dbm.Client{}).
		Where("studio_id = ?", studioID).
		Count(&n).Error
	return n, err
}

func (r *overviewRepository) CountUnassignedClients(ctx context.Context, studioID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&dbm.Client{}).
		Where("studio_id = ? AND artist_id IS NULL", studioID).
		Count(&n).Error
	return n, err
}

func (r *overviewRepository) CountWannado(ctx context.Context, studioID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&dbm.Image{}).
		Joins("JOIN artists ON artists.id = images.artist_id").
		Where("images.kind = ? AND artists.studio_id = ?", dbm.KindWannado, studioID).
		Count(&n).Error
	return n, err
}

func (r *overviewRepository) CountHealingEntries(ctx context.Context, studioID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&dbm.HealingEntry{}).
		Joins("JOIN clients ON clients.id = healing_entries.client_id").
		Where("clients.studio_id = ?", studioID).
		Count(&n).Error
	return n, err
}

func (r *overviewRepository) CountOpenHealing(ctx context.Context, studioID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&dbm.HealingEntry{}).
		Joins("JOIN clients ON clients.id = healing_entries.client_id").
		Where("clients.studio_id = ?", studioID).
		Where("NOT EXISTS (SELECT 1 FROM healing_responses hr WHERE hr.entry_id = healing_entries.id)").
		Count(&n).Error
	return n, err
}

func (r *overviewRepository) StudioWannado(ctx context.Context, studioID string) ([]dbm.Image, error) {
	var images []dbm.Image
	err := r.db.WithContext(ctx).
		Joins("JOIN artists ON artists.id = images.artist_id").
		Where("images.kind = ? AND artists.studio_id = ?", dbm.KindWannado, studioID).
		Order(newestFirst).
		Find(&images).Error
	return images, err
}

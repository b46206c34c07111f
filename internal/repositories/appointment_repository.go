package repositories

import (
	"context"

	"gorm.io/gorm"

	"inkstudio/internal/models/db_models"
)

// AppointmentRepository is read-only; appointments are written by seeding.
type AppointmentRepository interface {
	ListByClient(ctx context.Context, clientID string) ([]db_models.Appointment, error)
	// ListByArtist returns appointments of the artist's current clients.
	ListByArtist(ctx context.Context, artistID string) ([]db_models.Appointment, error)
}

type appointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) ListByClient(ctx context.Context, clientID string) ([]db_models.Appointment, error) {
	var appts []db_models.Appointment
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("date ASC").Order("id ASC").
		Find(&appts).Error
	return appts, err
}

func (r *appointmentRepository) ListByArtist(ctx context.Context, artistID string) ([]db_models.Appointment, error) {
	var appts []db_models.Appointment
	err := r.db.WithContext(ctx).
		Joins("JOIN clients ON clients.id = appointments.client_id").
		Where("clients.artist_id = ?", artistID).
		Order("appointments.date ASC").Order("appointments.id ASC").
		Find(&appts).Error
	return appts, err
}

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"

	"inkstudio/internal/models/db_models"
	"inkstudio/internal/models/request_models"
	"inkstudio/internal/repositories"
	"inkstudio/pkg/utils"
)

type SeedSummary struct {
	Studios      int
	Artists      int
	Clients      int
	Appointments int
}

type SeedServiceInterface interface {
	// SeedFromJSON imports a data.json document. Every password is hashed
	// before it is written, manager passwords included.
	SeedFromJSON(ctx context.Context, r io.Reader) (*SeedSummary, error)
	Seed(ctx context.Context, data request_models.SeedData) (*SeedSummary, error)
}

type SeedService struct {
	repo  repositories.SeedRepository
	clock utils.Clock
	log   *zap.Logger
}

func NewSeedService(repo repositories.SeedRepository, clock utils.Clock, log *zap.Logger) SeedServiceInterface {
	if clock == nil {
		clock = utils.NowUTC
	}
	return &SeedService{repo: repo, clock: clock, log: log.Named("seed")}
}

func (s *SeedService) SeedFromJSON(ctx context.Context, r io.Reader) (*SeedSummary, error) {
	var data request_models.SeedData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: decoding seed file: %v", utils.ErrValidation, err)
	}
	return s.Seed(ctx, data)
}

func (s *SeedService) Seed(ctx context.Context, data request_models.SeedData) (*SeedSummary, error) {
	now := s.clock()
	var set repositories.SeedSet

	for _, st := range data.Studios {
		if st.ID == "" {
			return nil, utils.Validationf("studio without id")
		}
		studio := studioFromInput(st)
		studio.CreatedAt = now
		set.Studios = append(set.Studios, *studio)
	}
	for _, a := range data.Artists {
		if a.ID == "" {
			return nil, utils.Validationf("artist without id")
		}
		set.Artists = append(set.Artists, db_models.Artist{
			ID:           a.ID,
			Name:         orDefault(a.Name, a.ID),
			PasswordHash: utils.HashPassword(a.Password),
			StudioID:     strPtr(a.StudioID),
			CreatedAt:    now,
		})
	}
	for _, c := range data.Clients {
		if c.ID == "" {
			return nil, utils.Validationf("client without id")
		}
		set.Clients = append(set.Clients, db_models.Client{
			ID:           c.ID,
			Name:         orDefault(c.Name, c.ID),
			PasswordHash: utils.HashPassword(c.Password),
			StudioID:     strPtr(c.StudioID),
			ArtistID:     strPtr(c.ArtistID),
			CreatedAt:    now,
		})
	}
	for _, ap := range data.Appointments {
		if ap.ID == "" || ap.ClientID == "" {
			return nil, utils.Validationf("appointment needs id and clientId")
		}
		set.Appointments = append(set.Appointments, db_models.Appointment{
			ID:          ap.ID,
			ClientID:    ap.ClientID,
			Date:        ap.Date,
			Type:        ap.Type,
			Description: ap.Description,
		})
	}

	if err := s.repo.Upsert(ctx, set); err != nil {
		return nil, utils.DatabaseError(err)
	}
	summary := &SeedSummary{
		Studios:      len(set.Studios),
		Artists:      len(set.Artists),
		Clients:      len(set.Clients),
		Appointments: len(set.Appointments),
	}
	s.log.Info("seed applied",
		zap.Int("studios", summary.Studios),
		zap.Int("artists", summary.Artists),
		zap.Int("clients", summary.Clients),
		zap.Int("appointments", summary.Appointments))
	return summary, nil
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

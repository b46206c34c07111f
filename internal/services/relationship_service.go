package services

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"inkstudio/internal/models/response_models"
	"inkstudio/internal/repositories"
	"inkstudio/pkg/utils"
)

type RelationshipServiceInterface interface {
	// AssignClientToArtist checks studio consistency before overwriting the
	// client's artist. An empty studioID skips the manager scope check but
	// still compares the client and artist studios.
	AssignClientToArtist(ctx context.Context, studioID, clientID, artistID string) error
	ListArtistClients(ctx context.Context, artistID string) ([]response_models.ClientSummary, error)
	// ListStudioClients and ListArtists return the global roster for a nil
	// studioID. Only unscoped admin routes pass nil.
	ListStudioClients(ctx context.Context, studioID *string) ([]response_models.ClientSummary, error)
	ListArtists(ctx context.Context, studioID *string) ([]response_models.ArtistSummary, error)
	ListAppointmentsForClient(ctx context.Context, clientID string) ([]response_models.AppointmentResponse, error)
	ListAppointmentsForArtist(ctx context.Context, artistID string) ([]response_models.AppointmentResponse, error)
}

type RelationshipService struct {
	clients      repositories.ClientRepository
	artists      repositories.ArtistRepository
	appointments repositories.AppointmentRepository
	log          *zap.Logger
}

func NewRelationshipService(
	clients repositories.ClientRepository,
	artists repositories.ArtistRepository,
	appointments repositories.AppointmentRepository,
	log *zap.Logger,
) RelationshipServiceInterface {
	return &RelationshipService{
		clients:      clients,
		artists:      artists,
		appointments: appointments,
		log:          log.Named("relationship"),
	}
}

func (s *RelationshipService) AssignClientToArtist(ctx context.Context, studioID, clientID, artistID string) error {
	if clientID == "" || artistID == "" {
		return utils.Validationf("clientId and artistId are required")
	}
	client, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		return utils.DatabaseError(err)
	}
	if client == nil {
		return utils.NotFoundf("client %q", clientID)
	}
	artist, err := s.artists.FindByID(ctx, artistID)
	if err != nil {
		return utils.DatabaseError(err)
	}
	if artist == nil {
		return utils.NotFoundf("artist %q", artistID)
	}
	if err := checkSameStudio(studioID, client.StudioID, artist.StudioID); err != nil {
		s.log.Warn("assignment rejected",
			zap.String("studio_id", studioID),
			zap.String("client_id", clientID),
			zap.String("artist_id", artistID))
		return err
	}

	if err := s.clients.AssignArtist(ctx, clientID, artistID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFoundf("client %q", clientID)
		}
		return utils.DatabaseError(err)
	}
	s.log.Info("client assigned",
		zap.String("client_id", clientID),
		zap.String("artist_id", artistID),
		zap.Stringp("previous_artist_id", client.ArtistID))
	return nil
}

// checkSameStudio accepts unset studios on either side. When scope is set,
// every set studio must equal it.
func checkSameStudio(scope string, studios ...*string) error {
	var seen string
	for _, st := range studios {
		if st == nil || *st == "" {
			continue
		}
		if scope != "" && *st != scope {
			return utils.ErrTenantMismatch
		}
		if seen != "" && *st != seen {
			return utils.ErrTenantMismatch
		}
		seen = *st
	}
	return nil
}

func (s *RelationshipService) ListArtistClients(ctx context.Context, artistID string) ([]response_models.ClientSummary, error) {
	clients, err := s.clients.ListByArtist(ctx, artistID)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	return toClientSummaries(clients), nil
}

func (s *RelationshipService) ListStudioClients(ctx context.Context, studioID *string) ([]response_models.ClientSummary, error) {
	clients, err := s.clients.List(ctx, studioID)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	return toClientSummaries(clients), nil
}

func (s *RelationshipService) ListArtists(ctx context.Context, studioID *string) ([]response_models.ArtistSummary, error) {
	artists, err := s.artists.List(ctx, studioID)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	return toArtistSummaries(artists), nil
}

func (s *RelationshipService) ListAppointmentsForClient(ctx context.Context, clientID string) ([]response_models.AppointmentResponse, error) {
	appts, err := s.appointments.ListByClient(ctx, clientID)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	return toAppointmentResponses(appts), nil
}

func (s *RelationshipService) ListAppointmentsForArtist(ctx context.Context, artistID string) ([]response_models.AppointmentResponse, error) {
	artist, err := s.artists.FindByID(ctx, artistID)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	if artist == nil {
		return nil, utils.NotFoundf("artist %q", artistID)
	}
	appts, err := s.appointments.ListByArtist(ctx, artistID)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	return toAppointmentResponses(appts), nil
}


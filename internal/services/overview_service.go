package services

import (
	"context"

	"inkstudio/internal/models/response_models"
	"inkstudio/internal/repositories"
	"inkstudio/internal/storage"
	"inkstudio/pkg/utils"
)

type OverviewServiceInterface interface {
	StudioOverview(ctx context.Context, studioID string) (*response_models.StudioOverview, error)
}

type OverviewService struct {
	overview repositories.OverviewRepository
	studios  repositories.StudioRepository
	artists  repositories.ArtistRepository
	clients  repositories.ClientRepository
	healing  repositories.HealingRepository
	store    storage.FileStore
}

func NewOverviewService(
	overview repositories.OverviewRepository,
	studios repositories.StudioRepository,
	artists repositories.ArtistRepository,
	clients repositories.ClientRepository,
	healing repositories.HealingRepository,
	store storage.FileStore,
) OverviewServiceInterface {
	return &OverviewService{
		overview: overview,
		studios:  studios,
		artists:  artists,
		clients:  clients,
		healing:  healing,
		store:    store,
	}
}

func (s *OverviewService) StudioOverview(ctx context.Context, studioID string) (*response_models.StudioOverview, error) {
	studio, err := s.studios.FindByID(ctx, studioID)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	if studio == nil {
		return nil, utils.NotFoundf("studio %q", studioID)
	}

	var counts response_models.OverviewCounts
	for _, c := range []struct {
		dst *int64
		fn  func(context.Context, string) (int64, error)
	}{
		{&counts.Artists, s.overview.CountArtists},
		{&counts.Clients, s.overview.CountClients},
		{&counts.UnassignedCount, s.overview.CountUnassignedClients},
		{&counts.Wannado, s.overview.CountWannado},
		{&counts.HealingEntries, s.overview.CountHealingEntries},
		{&counts.OpenHealing, s.overview.CountOpenHealing},
	} {
		n, err := c.fn(ctx, studioID)
		if err != nil {
			return nil, utils.DatabaseError(err)
		}
		*c.dst = n
	}

	artists, err := s.artists.List(ctx, &studioID)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	clients, err := s.clients.List(ctx, &studioID)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	wannado, err := s.overview.StudioWannado(ctx, studioID)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	healing, err := s.healing.ListByStudio(ctx, studioID)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}

	return &response_models.StudioOverview{
		Studio:  response_models.StudioSummary{ID: studio.ID, Name: studio.Name},
		Counts:  counts,
		Artists: toArtistSummaries(artists),
		Clients: toClientSummaries(clients),
		Wannado: toImageResponses(wannado, s.store),
		Healing: toHealingEntryResponses(healing, s.store),
	}, nil
}

package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"inkstudio/internal/models/db_models"
	"inkstudio/internal/models/response_models"
	"inkstudio/internal/realtime"
	"inkstudio/internal/repositories"
	"inkstudio/internal/storage"
	"inkstudio/pkg/utils"
)

type HealingServiceInterface interface {
	AddHealingForClient(ctx context.Context, clientID string, items []UploadItem, comment string) (*response_models.HealingEntryResponse, error)
	// AddHealingResponse appends an artist response. entryID must belong to
	// clientID.
	AddHealingResponse(ctx context.Context, clientID, entryID, artistID, comment string) (*response_models.HealingResponseView, error)
	// ListHealingForArtist follows the clients' current assignment, so
	// entries of a reassigned client move to the new artist.
	ListHealingForArtist(ctx context.Context, artistID string) ([]response_models.HealingEntryResponse, error)
	ListHealingForClient(ctx context.Context, clientID string) ([]response_models.HealingEntryResponse, error)
}

type HealingService struct {
	healing   repositories.HealingRepository
	clients   repositories.ClientRepository
	artists   repositories.ArtistRepository
	store     storage.FileStore
	publisher EventPublisher
	clock     utils.Clock
	maxBytes  int64
	log       *zap.Logger
}

type HealingServiceParams struct {
	Healing   repositories.HealingRepository
	Clients   repositories.ClientRepository
	Artists   repositories.ArtistRepository
	Store     storage.FileStore
	Publisher EventPublisher
	Clock     utils.Clock
	MaxBytes  int64
	Log       *zap.Logger
}

func NewHealingService(p HealingServiceParams) HealingServiceInterface {
	s := &HealingService{
		healing:   p.Healing,
		clients:   p.Clients,
		artists:   p.Artists,
		store:     p.Store,
		publisher: p.Publisher,
		clock:     p.Clock,
		maxBytes:  p.MaxBytes,
		log:       p.Log.Named("healing"),
	}
	if s.publisher == nil {
		s.publisher = nopPublisher{}
	}
	if s.clock == nil {
		s.clock = utils.NowUTC
	}
	return s
}

// createHealingEntry writes the files, then the entry and its images in one
// transaction. Images keep their upload order through Position.
func createHealingEntry(ctx context.Context, repo repositories.HealingRepository, store storage.FileStore, clock utils.Clock, log *zap.Logger, clientID string, items []UploadItem, comment string) (*db_models.HealingEntry, error) {
	files, err := writeFiles(ctx, store, log, db_models.KindHealing, items)
	if err != nil {
		return nil, err
	}
	entry := &db_models.HealingEntry{
		BaseModel: db_models.BaseModel{CreatedAt: clock()},
		ClientID:  clientID,
		Comment:   comment,
	}
	rows := buildImages(files, items, func() time.Time { return entry.CreatedAt }, db_models.KindHealing, &clientID, nil, strPtr(comment))
	if err := repo.CreateEntry(ctx, entry, rows); err != nil {
		log.Error("inserting healing entry", zap.String("client_id", clientID), zap.Error(err))
		return nil, utils.DatabaseError(err)
	}
	return entry, nil
}

// announceHealingEntry tells the client's current artist about a new entry.
func announceHealingEntry(pub EventPublisher, client *db_models.Client, resp response_models.HealingEntryResponse) {
	if client.ArtistID != nil && *client.ArtistID != "" {
		pub.Publish(realtime.ArtistTopic(*client.ArtistID), realtime.EventHealingCreated, resp)
	}
}

func (s *HealingService) AddHealingForClient(ctx context.Context, clientID string, items []UploadItem, comment string) (*response_models.HealingEntryResponse, error) {
	if err := validateItems(items, s.maxBytes); err != nil {
		return nil, err
	}
	client, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	if client == nil {
		return nil, utils.NotFoundf("client %q", clientID)
	}

	entry, err := createHealingEntry(ctx, s.healing, s.store, s.clock, s.log, clientID, items, comment)
	if err != nil {
		return nil, err
	}
	entry.Client = client
	resp := toHealingEntryResponse(*entry, s.store)

	announceHealingEntry(s.publisher, client, resp)
	s.log.Info("healing entry created", zap.String("client_id", clientID), zap.String("entry_id", entry.ID), zap.Int("images", len(entry.Images)))
	return &resp, nil
}

func (s *HealingService) AddHealingResponse(ctx context.Context, clientID, entryID, artistID, comment string) (*response_models.HealingResponseView, error) {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return nil, utils.Validationf("comment is required")
	}
	entry, err := s.healing.FindEntryForClient(ctx, entryID, clientID)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	if entry == nil {
		return nil, utils.NotFoundf("healing entry %q for client %q", entryID, clientID)
	}
	artist, err := s.artists.FindByID(ctx, artistID)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	if artist == nil {
		return nil, utils.NotFoundf("artist %q", artistID)
	}
	client, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	if client == nil {
		return nil, utils.NotFoundf("client %q", clientID)
	}
	if err := checkSameStudio("", client.StudioID, artist.StudioID); err != nil {
		return nil, err
	}

	resp := &db_models.HealingResponse{
		BaseModel: db_models.BaseModel{CreatedAt: s.clock()},
		EntryID:   entry.ID,
		ArtistID:  artistID,
		Comment:   comment,
	}
	if err := s.healing.AddResponse(ctx, resp); err != nil {
		return nil, utils.DatabaseError(err)
	}

	view := toHealingResponseView(*resp)
	s.publisher.Publish(realtime.ClientTopic(clientID), realtime.EventHealingResponse, map[string]interface{}{
		"entryId":  entry.ID,
		"response": view,
	})
	s.log.Info("healing response added", zap.String("entry_id", entry.ID), zap.String("artist_id", artistID))
	return &view, nil
}

func (s *HealingService) ListHealingForArtist(ctx context.Context, artistID string) ([]response_models.HealingEntryResponse, error) {
	entries, err := s.healing.ListByArtist(ctx, artistID)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	return toHealingEntryResponses(entries, s.store), nil
}

func (s *HealingService) ListHealingForClient(ctx context.Context, clientID string) ([]response_models.HealingEntryResponse, error) {
	entries, err := s.healing.ListByClient(ctx, clientID)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	return toHealingEntryResponses(entries, s.store), nil
}

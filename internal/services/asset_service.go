package services

import (
	"context"

	"go.uber.org/zap"

	"inkstudio/internal/models/db_models"
	"inkstudio/internal/models/response_models"
	"inkstudio/internal/repositories"
	"inkstudio/internal/storage"
	"inkstudio/pkg/utils"
)

type AssetServiceInterface interface {
	// AddImages stores a batch for ownerID. ownerID is a client id, or an
	// artist id when kind is wannado.
	AddImages(ctx context.Context, ownerID string, kind db_models.ImageKind, items []UploadItem, comment string) (*response_models.UploadResult, error)
	// AddArtistUpload stores template or final images an artist made for one
	// of their clients.
	AddArtistUpload(ctx context.Context, artistID, clientID string, kind db_models.ImageKind, items []UploadItem) (*response_models.UploadResult, error)
	ListImages(ctx context.Context, clientID string, kind db_models.ImageKind) ([]response_models.ImageResponse, error)
	// FinalTemplate returns the most recent final image, or nil.
	FinalTemplate(ctx context.Context, clientID string) (*response_models.ImageResponse, error)

	AddWannado(ctx context.Context, artistID string, items []UploadItem) (*response_models.UploadResult, error)
	ListWannadoForArtist(ctx context.Context, artistID string) ([]response_models.ImageResponse, error)
	// ListWannadoForClient resolves the client's current artist on every
	// call and returns an empty list when there is none.
	ListWannadoForClient(ctx context.Context, clientID string) ([]response_models.ImageResponse, error)

	ClientDetails(ctx context.Context, clientID string) (*response_models.ClientDetails, error)
}

type AssetService struct {
	images       repositories.ImageRepository
	clients      repositories.ClientRepository
	artists      repositories.ArtistRepository
	appointments repositories.AppointmentRepository
	healing      repositories.HealingRepository
	store        storage.FileStore
	publisher    EventPublisher
	clock        utils.Clock
	maxBytes     int64
	log          *zap.Logger
}

type AssetServiceParams struct {
	Images       repositories.ImageRepository
	Clients      repositories.ClientRepository
	Artists      repositories.ArtistRepository
	Appointments repositories.AppointmentRepository
	Healing      repositories.HealingRepository
	Store        storage.FileStore
	Publisher    EventPublisher
	Clock        utils.Clock
	MaxBytes     int64
	Log          *zap.Logger
}

func NewAssetService(p AssetServiceParams) AssetServiceInterface {
	clock := p.Clock
	if clock == nil {
		clock = utils.NowUTC
	}
	var publisher EventPublisher = nopPublisher{}
	if p.Publisher != nil {
		publisher = p.Publisher
	}
	return &AssetService{
		images:       p.Images,
		clients:      p.Clients,
		artists:      p.Artists,
		appointments: p.Appointments,
		healing:      p.Healing,
		store:        p.Store,
		publisher:    publisher,
		clock:        clock,
		maxBytes:     p.MaxBytes,
		log:          p.Log.Named("assets"),
	}
}

func (s *AssetService) AddImages(ctx context.Context, ownerID string, kind db_models.ImageKind, items []UploadItem, comment string) (*response_models.UploadResult, error) {
	if !kind.Valid() {
		return nil, utils.ErrInvalidImageKind
	}
	if kind == db_models.KindWannado {
		return s.AddWannado(ctx, ownerID, items)
	}
	if err := validateItems(items, s.maxBytes); err != nil {
		return nil, err
	}
	client, err := s.requireClient(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if kind == db_models.KindHealing {
		entry, err := createHealingEntry(ctx, s.healing, s.store, s.clock, s.log, ownerID, items, comment)
		if err != nil {
			return nil, err
		}
		entry.Client = client
		announceHealingEntry(s.publisher, client, toHealingEntryResponse(*entry, s.store))
		return &response_models.UploadResult{Uploaded: len(entry.Images), Images: toImageResponses(entry.Images, s.store)}, nil
	}
	return s.saveBatch(ctx, kind, items, strPtr(ownerID), nil, strPtr(comment))
}

func (s *AssetService) AddArtistUpload(ctx context.Context, artistID, clientID string, kind db_models.ImageKind, items []UploadItem) (*response_models.UploadResult, error) {
	if kind != db_models.KindTemplate && kind != db_models.KindFinal {
		return nil, utils.ErrInvalidImageKind
	}
	if err := validateItems(items, s.maxBytes); err != nil {
		return nil, err
	}
	artist, err := s.requireArtist(ctx, artistID)
	if err != nil {
		return nil, err
	}
	client, err := s.requireClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client.ArtistID != nil && *client.ArtistID != artist.ID {
		return nil, utils.ErrTenantMismatch
	}
	if err := checkSameStudio("", client.StudioID, artist.StudioID); err != nil {
		return nil, err
	}
	return s.saveBatch(ctx, kind, items, strPtr(clientID), strPtr(artistID), nil)
}

func (s *AssetService) AddWannado(ctx context.Context, artistID string, items []UploadItem) (*response_models.UploadResult, error) {
	if err := validateItems(items, s.maxBytes); err != nil {
		return nil, err
	}
	if _, err := s.requireArtist(ctx, artistID); err != nil {
		return nil, err
	}
	return s.saveBatch(ctx, db_models.KindWannado, items, nil, strPtr(artistID), nil)
}

// saveBatch writes the files, then inserts every row in one transaction.
func (s *AssetService) saveBatch(ctx context.Context, kind db_models.ImageKind, items []UploadItem, clientID, artistID, comment *string) (*response_models.UploadResult, error) {
	files, err := writeFiles(ctx, s.store, s.log, kind, items)
	if err != nil {
		return nil, err
	}
	rows := buildImages(files, items, s.clock, kind, clientID, artistID, comment)
	if err := s.images.CreateBatch(ctx, rows); err != nil {
		s.log.Error("inserting image rows", zap.String("kind", kind.String()), zap.Int("count", len(rows)), zap.Error(err))
		return nil, utils.DatabaseError(err)
	}
	s.log.Info("images stored",
		zap.String("kind", kind.String()),
		zap.Stringp("client_id", clientID),
		zap.Stringp("artist_id", artistID),
		zap.Int("count", len(rows)))
	return &response_models.UploadResult{Uploaded: len(rows), Images: toImageResponses(rows, s.store)}, nil
}

func (s *AssetService) ListImages(ctx context.Context, clientID string, kind db_models.ImageKind) ([]response_models.ImageResponse, error) {
	if !kind.Valid() || !kind.ClientOwned() {
		return nil, utils.ErrInvalidImageKind
	}
	images, err := s.images.ListByClient(ctx, clientID, kind)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	return toImageResponses(images, s.store), nil
}

func (s *AssetService) FinalTemplate(ctx context.Context, clientID string) (*response_models.ImageResponse, error) {
	img, err := s.images.LatestByClient(ctx, clientID, db_models.KindFinal)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	if img == nil {
		return nil, nil
	}
	resp := toImageResponse(*img, s.store)
	return &resp, nil
}

func (s *AssetService) ListWannadoForArtist(ctx context.Context, artistID string) ([]response_models.ImageResponse, error) {
	images, err := s.images.ListWannadoByArtist(ctx, artistID)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	return toImageResponses(images, s.store), nil
}

func (s *AssetService) ListWannadoForClient(ctx context.Context, clientID string) ([]response_models.ImageResponse, error) {
	client, err := s.requireClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client.ArtistID == nil || *client.ArtistID == "" {
		return []response_models.ImageResponse{}, nil
	}
	return s.ListWannadoForArtist(ctx, *client.ArtistID)
}

func (s *AssetService) ClientDetails(ctx context.Context, clientID string) (*response_models.ClientDetails, error) {
	client, err := s.requireClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	appts, err := s.appointments.ListByClient(ctx, clientID)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	ideas, err := s.ListImages(ctx, clientID, db_models.KindIdea)
	if err != nil {
		return nil, err
	}
	templates, err := s.ListImages(ctx, clientID, db_models.KindTemplate)
	if err != nil {
		return nil, err
	}
	final, err := s.FinalTemplate(ctx, clientID)
	if err != nil {
		return nil, err
	}
	entries, err := s.healing.ListByClient(ctx, clientID)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}

	return &response_models.ClientDetails{
		ID:            client.ID,
		Name:          client.Name,
		StudioID:      client.StudioID,
		ArtistID:      client.ArtistID,
		Appointments:  toAppointmentResponses(appts),
		Ideas:         ideas,
		Templates:     templates,
		FinalTemplate: final,
		Healing:       toHealingEntryResponses(entries, s.store),
	}, nil
}

func (s *AssetService) requireClient(ctx context.Context, clientID string) (*db_models.Client, error) {
	client, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	if client == nil {
		return nil, utils.NotFoundf("client %q", clientID)
	}
	return client, nil
}

func (s *AssetService) requireArtist(ctx context.Context, artistID string) (*db_models.Artist, error) {
	artist, err := s.artists.FindByID(ctx, artistID)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	if artist == nil {
		return nil, utils.NotFoundf("artist %q", artistID)
	}
	return artist, nil
}

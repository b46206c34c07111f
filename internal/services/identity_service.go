package services

import (
	"context"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"inkstudio/internal/models/db_models"
	"inkstudio/internal/models/request_models"
	"inkstudio/internal/models/response_models"
	"inkstudio/internal/repositories"
	mem "inkstudio/pkg/memcache"
	"inkstudio/pkg/utils"
)

type IdentityServiceInterface interface {
	CreateStudio(ctx context.Context, input request_models.StudioInput) error
	ListStudios(ctx context.Context) ([]response_models.StudioSummary, error)
	GetStudioTheme(ctx context.Context, studioID string) (*response_models.StudioTheme, error)

	CreateArtist(ctx context.Context, id, name, password, studioID string) (*response_models.ArtistSummary, error)
	CreateClient(ctx context.Context, id, name, password, studioID, artistID string) (*response_models.ClientSummary, error)
	GetArtist(ctx context.Context, id string) (*response_models.ArtistSummary, error)
	GetClient(ctx context.Context, id string) (*response_models.ClientSummary, error)

	// VerifyCredential never says whether the id or the password was wrong.
	VerifyCredential(ctx context.Context, role db_models.Role, id, password string) error
	CheckManager(ctx context.Context, studioID, user, password string) error

	// HashLegacyManagerPasswords rewrites manager passwords stored in
	// plaintext. It returns the number of rows changed.
	HashLegacyManagerPasswords(ctx context.Context) (int, error)
}

type IdentityService struct {
	studios    repositories.StudioRepository
	artists    repositories.ArtistRepository
	clients    repositories.ClientRepository
	themeCache mem.Store[response_models.StudioTheme]
	themeTTL   time.Duration
	log        *zap.Logger
}

func NewIdentityService(
	studios repositories.StudioRepository,
	artists repositories.ArtistRepository,
	clients repositories.ClientRepository,
	themeCache mem.Store[response_models.StudioTheme],
	themeTTL time.Duration,
	log *zap.Logger,
) IdentityServiceInterface {
	return &IdentityService{
		studios:    studios,
		artists:    artists,
		clients:    clients,
		themeCache: themeCache,
		themeTTL:   themeTTL,
		log:        log.Named("identity"),
	}
}

func (s *IdentityService) CreateStudio(ctx context.Context, input request_models.StudioInput) error {
	if input.ID == "" {
		return utils.Validationf("studio id is required")
	}
	existing, err := s.studios.FindByID(ctx, input.ID)
	if err != nil {
		return utils.DatabaseError(err)
	}
	if existing != nil {
		return utils.ErrConflict
	}
	if err := s.studios.Create(ctx, studioFromInput(input)); err != nil {
		return translateDBError(err)
	}
	return nil
}

func studioFromInput(input request_models.StudioInput) *db_models.Studio {
	studio := &db_models.Studio{
		ID:             input.ID,
		Name:           input.Name,
		ThemePrimary:   input.Theme.PrimaryColor,
		ThemeSecondary: input.Theme.SecondaryColor,
		ThemeAccent:    input.Theme.AccentColor,
		FontHead:       input.Theme.FontHead,
		FontBody:       input.Theme.FontBody,
		Background:     input.Theme.Bg,
	}
	if studio.Name == "" {
		studio.Name = input.ID
	}
	if input.Manager != nil && input.Manager.User != "" {
		studio.ManagerUser = input.Manager.User
		studio.ManagerPassword = utils.HashPassword(input.Manager.Password)
	}
	return studio
}

func (s *IdentityService) ListStudios(ctx context.Context) ([]response_models.StudioSummary, error) {
	studios, err := s.studios.List(ctx)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	out := make([]response_models.StudioSummary, 0, len(studios))
	for _, st := range studios {
		out = append(out, response_models.StudioSummary{ID: st.ID, Name: st.Name})
	}
	return out, nil
}

func (s *IdentityService) GetStudioTheme(ctx context.Context, studioID string) (*response_models.StudioTheme, error) {
	if theme, ok := s.themeCache.Get(studioID); ok {
		return &theme, nil
	}
	studio, err := s.studios.FindByID(ctx, studioID)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	if studio == nil {
		return nil, utils.NotFoundf("studio %q", studioID)
	}
	theme := response_models.StudioTheme{
		PrimaryColor:   studio.ThemePrimary,
		SecondaryColor: studio.ThemeSecondary,
		AccentColor:    studio.ThemeAccent,
		FontHead:       studio.FontHead,
		FontBody:       studio.FontBody,
		Bg:             studio.Background,
	}
	s.themeCache.Set(studioID, theme, s.themeTTL)
	return &theme, nil
}

func (s *IdentityService) CreateArtist(ctx context.Context, id, name, password, studioID string) (*response_models.ArtistSummary, error) {
	if id == "" || password == "" {
		return nil, utils.Validationf("artist id and password are required")
	}
	existing, err := s.artists.FindByID(ctx, id)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	if existing != nil {
		return nil, utils.ErrConflict
	}
	if err := s.requireStudio(ctx, studioID); err != nil {
		return nil, err
	}
	if name == "" {
		name = id
	}

	artist := &db_models.Artist{
		ID:           id,
		Name:         name,
		PasswordHash: utils.HashPassword(password),
		StudioID:     strPtr(studioID),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.artists.Create(ctx, artist); err != nil {
		return nil, translateDBError(err)
	}
	s.log.Info("artist registered", zap.String("artist_id", id), zap.String("studio_id", studioID))
	return &response_models.ArtistSummary{ID: artist.ID, Name: artist.Name, StudioID: artist.StudioID}, nil
}

func (s *IdentityService) CreateClient(ctx context.Context, id, name, password, studioID, artistID string) (*response_models.ClientSummary, error) {
	if id == "" || password == "" {
		return nil, utils.Validationf("client id and password are required")
	}
	existing, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	if existing != nil {
		return nil, utils.ErrConflict
	}
	if err := s.requireStudio(ctx, studioID); err != nil {
		return nil, err
	}
	if artistID != "" {
		artist, err := s.artists.FindByID(ctx, artistID)
		if err != nil {
			return nil, utils.DatabaseError(err)
		}
		if artist == nil {
			return nil, utils.NotFoundf("artist %q", artistID)
		}
		if studioID != "" && artist.StudioID != nil && *artist.StudioID != studioID {
			return nil, utils.ErrTenantMismatch
		}
	}
	if name == "" {
		name = id
	}

	client := &db_models.Client{
		ID:           id,
		Name:         name,
		PasswordHash: utils.HashPassword(password),
		StudioID:     strPtr(studioID),
		ArtistID:     strPtr(artistID),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.clients.Create(ctx, client); err != nil {
		return nil, translateDBError(err)
	}
	s.log.Info("client registered", zap.String("client_id", id), zap.String("studio_id", studioID))
	return &response_models.ClientSummary{ID: client.ID, Name: client.Name, StudioID: client.StudioID, ArtistID: client.ArtistID}, nil
}

func (s *IdentityService) requireStudio(ctx context.Context, studioID string) error {
	if studioID == "" {
		return nil
	}
	studio, err := s.studios.FindByID(ctx, studioID)
	if err != nil {
		return utils.DatabaseError(err)
	}
	if studio == nil {
		return utils.NotFoundf("studio %q", studioID)
	}
	return nil
}

func (s *IdentityService) GetArtist(ctx context.Context, id string) (*response_models.ArtistSummary, error) {
	artist, err := s.artists.FindByID(ctx, id)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	if artist == nil {
		return nil, utils.NotFoundf("artist %q", id)
	}
	return &response_models.ArtistSummary{ID: artist.ID, Name: artist.Name, StudioID: artist.StudioID}, nil
}

func (s *IdentityService) GetClient(ctx context.Context, id string) (*response_models.ClientSummary, error) {
	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	if client == nil {
		return nil, utils.NotFoundf("client %q", id)
	}
	return &response_models.ClientSummary{ID: client.ID, Name: client.Name, StudioID: client.StudioID, ArtistID: client.ArtistID}, nil
}

func (s *IdentityService) VerifyCredential(ctx context.Context, role db_models.Role, id, password string) error {
	var hash string
	switch role {
	case db_models.RoleArtist:
		artist, err := s.artists.FindByID(ctx, id)
		if err != nil {
			return utils.DatabaseError(err)
		}
		if artist != nil {
			hash = artist.PasswordHash
		}
	case db_models.RoleClient:
		client, err := s.clients.FindByID(ctx, id)
		if err != nil {
			return utils.DatabaseError(err)
		}
		if client != nil {
			hash = client.PasswordHash
		}
	default:
		return utils.Validationf("role must be %q or %q", db_models.RoleArtist, db_models.RoleClient)
	}

	// Unknown ids still pay for a hash so both failures look the same.
	if err := utils.ComparePasswords(hash, password); err != nil {
		return utils.ErrInvalidCredentials
	}
	return nil
}

func (s *IdentityService) CheckManager(ctx context.Context, studioID, user, password string) error {
	studio, err := s.studios.FindByID(ctx, studioID)
	if err != nil {
		return utils.DatabaseError(err)
	}
	if studio == nil || studio.ManagerUser == "" || studio.ManagerUser != user {
		utils.HashPassword(password)
		return utils.ErrInvalidCredentials
	}
	if err := utils.ComparePasswords(studio.ManagerPassword, password); err != nil {
		return utils.ErrInvalidCredentials
	}
	return nil
}

func (s *IdentityService) HashLegacyManagerPasswords(ctx context.Context) (int, error) {
	studios, err := s.studios.ListAll(ctx)
	if err != nil {
		return 0, utils.DatabaseError(err)
	}

	var (
		changed int
		errs    error
	)
	for _, st := range studios {
		if st.ManagerPassword == "" || utils.LooksHashed(st.ManagerPassword) {
			continue
		}
		if err := s.studios.UpdateManagerPassword(ctx, st.ID, utils.HashPassword(st.ManagerPassword)); err != nil {
			errs = multierr.Append(errs, utils.DatabaseError(err))
			continue
		}
		changed++
	}
	if changed > 0 {
		s.log.Info("hashed legacy manager passwords", zap.Int("studios", changed))
	}
	return changed, errs
}

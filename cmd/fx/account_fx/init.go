package account_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"inkstudio/internal/config"
	"inkstudio/internal/models/response_models"
	"inkstudio/internal/repositories"
	"inkstudio/internal/services"
	mem "inkstudio/pkg/memcache"
)

var Module = fx.Provide(provideIdentityService)

func provideIdentityService(
	cfg *config.Config,
	studios repositories.StudioRepository,
	artists repositories.ArtistRepository,
	clients repositories.ClientRepository,
	themeCache mem.Store[response_models.StudioTheme],
	log *zap.Logger,
) services.IdentityServiceInterface {
	return services.NewIdentityService(studios, artists, clients, themeCache, cfg.ThemeCacheTTL, log)
}

package healing_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"inkstudio/internal/config"
	"inkstudio/internal/realtime"
	"inkstudio/internal/repositories"
	"inkstudio/internal/services"
	"inkstudio/internal/storage"
	"inkstudio/pkg/utils"
)

var Module = fx.Provide(provideHealingService)

type healingDeps struct {
	fx.In

	Config  *config.Config
	Healing repositories.HealingRepository
	Clients repositories.ClientRepository
	Artists repositories.ArtistRepository
	Store   storage.FileStore
	Hub     *realtime.Hub
	Log     *zap.Logger
}

func provideHealingService(d healingDeps) services.HealingServiceInterface {
	return services.NewHealingService(services.HealingServiceParams{
		Healing:   d.Healing,
		Clients:   d.Clients,
		Artists:   d.Artists,
		Store:     d.Store,
		Publisher: d.Hub,
		Clock:     utils.NowUTC,
		MaxBytes:  d.Config.MaxUploadBytes,
		Log:       d.Log,
	})
}

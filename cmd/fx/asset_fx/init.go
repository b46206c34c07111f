package asset_fx

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

var Module = fx.Provide(provideAssetService)

type assetDeps struct {
	fx.In

	Config       *config.Config
	Images       repositories.ImageRepository
	Clients      repositories.ClientRepository
	Artists      repositories.ArtistRepository
	Appointments repositories.AppointmentRepository
	Healing      repositories.HealingRepository
	Store        storage.FileStore
	Hub          *realtime.Hub
	Log          *zap.Logger
}

func provideAssetService(d assetDeps) services.AssetServiceInterface {
	return services.NewAssetService(services.AssetServiceParams{
		Images:       d.Images,
		Clients:      d.Clients,
		Artists:      d.Artists,
		Appointments: d.Appointments,
		Healing:      d.Healing,
		Store:        d.Store,
		Publisher:    d.Hub,
		Clock:        utils.NowUTC,
		MaxBytes:     d.Config.MaxUploadBytes,
		Log:          d.Log,
	})
}

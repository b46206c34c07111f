package controllers_fx

import (
	"go.uber.org/fx"

	"inkstudio/internal/api/controllers"
	"inkstudio/internal/config"
)

var Module = fx.Options(
	fx.Provide(provideUploadLimit),
	fx.Provide(controllers.NewHealthController),
	fx.Provide(controllers.NewAuthController),
	fx.Provide(controllers.NewStudioController),
	fx.Provide(controllers.NewClientController),
	fx.Provide(controllers.NewArtistController))

func provideUploadLimit(cfg *config.Config) controllers.UploadLimit {
	return controllers.UploadLimit(cfg.MaxUploadBytes)
}

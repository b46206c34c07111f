package repositories_fx

import (
	"go.uber.org/fx"

	"inkstudio/internal/repositories"
)

var Module = fx.Provide(
	repositories.NewStudioRepository,
	repositories.NewArtistRepository,
	repositories.NewClientRepository,
	repositories.NewAppointmentRepository,
	repositories.NewImageRepository,
	repositories.NewHealingRepository,
	repositories.NewOverviewRepository,
	repositories.NewSeedRepository,
)

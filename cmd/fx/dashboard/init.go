package dashboard

import (
	"go.uber.org/fx"

	"inkstudio/internal/services"
)

var Module = fx.Provide(services.NewOverviewService)

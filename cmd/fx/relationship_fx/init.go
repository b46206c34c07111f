package relationship_fx

import (
	"go.uber.org/fx"

	"inkstudio/internal/services"
)

var Module = fx.Provide(services.NewRelationshipService)

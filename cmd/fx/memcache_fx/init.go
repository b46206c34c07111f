package memcache_fx

import (
	"go.uber.org/fx"

	"inkstudio/internal/models/response_models"
	mem "inkstudio/pkg/memcache"
)

var Module = fx.Provide(provideThemeCache)

func provideThemeCache() mem.Store[response_models.StudioTheme] {
	return mem.NewTTLCache[response_models.StudioTheme]()
}

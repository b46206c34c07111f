package realtime_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"inkstudio/internal/realtime"
)

var Module = fx.Provide(provideHub)

// provideHub runs the hub for the lifetime of the application. Stopping it
// closes every open stream.
func provideHub(lc fx.Lifecycle, log *zap.Logger) *realtime.Hub {
	hub := realtime.NewHub(log)
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go hub.Run(ctx)
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
	return hub
}

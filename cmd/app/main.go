package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"inkstudio/cmd/fx/account_fx"
	"inkstudio/cmd/fx/asset_fx"
	"inkstudio/cmd/fx/config_fx"
	"inkstudio/cmd/fx/controllers_fx"
	"inkstudio/cmd/fx/dashboard"
	"inkstudio/cmd/fx/db_fx"
	"inkstudio/cmd/fx/healing_fx"
	"inkstudio/cmd/fx/memcache_fx"
	"inkstudio/cmd/fx/realtime_fx"
	"inkstudio/cmd/fx/relationship_fx"
	"inkstudio/cmd/fx/repositories_fx"
	"inkstudio/cmd/fx/storage_fx"
	"inkstudio/cmd/fx/sweep_fx"
	"inkstudio/internal/api"
	"inkstudio/internal/api/controllers"
	"inkstudio/internal/config"
)

type controllersIn struct {
	fx.In

	Health *controllers.HealthController
	Auth   *controllers.AuthController
	Studio *controllers.StudioController
	Client *controllers.ClientController
	Artist *controllers.ArtistController
}

func main() {
	app := fx.New(
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		config_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		storage_fx.Module,
		repositories_fx.Module,
		realtime_fx.Module,
		account_fx.Module,
		relationship_fx.Module,
		asset_fx.Module,
		healing_fx.Module,
		dashboard.Module,
		sweep_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			log.Info("starting HTTP server", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("HTTP server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

func ProvideRouter(cfg *config.Config, log *zap.Logger, ctrl controllersIn) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	opts := api.RouterOptions{CORSOrigins: cfg.CORSOrigins}
	if cfg.StorageBackend == config.BackendDisk {
		opts.UploadRoot = cfg.UploadRoot
	}
	return api.NewRouter(log, opts, api.Controllers{
		Health: ctrl.Health,
		Auth:   ctrl.Auth,
		Studio: ctrl.Studio,
		Client: ctrl.Client,
		Artist: ctrl.Artist,
	})
}

package sweep_fx

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"inkstudio/internal/config"
	"inkstudio/internal/repositories"
	"inkstudio/internal/services"
	"inkstudio/internal/storage"
	"inkstudio/pkg/utils"
)

var Module = fx.Options(
	fx.Provide(provideSweepService),
	fx.Invoke(scheduleSweep),
)

func provideSweepService(images repositories.ImageRepository, store storage.FileStore, log *zap.Logger) services.SweepServiceInterface {
	return services.NewSweepService(images, store, utils.NowUTC, log)
}

// scheduleSweep registers the orphan sweep on SWEEP_SCHEDULE. An empty
// schedule leaves the sweep to studioctl.
func scheduleSweep(lc fx.Lifecycle, cfg *config.Config, sweep services.SweepServiceInterface, log *zap.Logger) error {
	if cfg.SweepSchedule == "" {
		return nil
	}
	c := cron.New()
	_, err := c.AddFunc(cfg.SweepSchedule, func() {
		if _, err := sweep.Sweep(context.Background(), cfg.SweepGrace); err != nil {
			log.Warn("scheduled sweep finished with errors", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid SWEEP_SCHEDULE %q: %w", cfg.SweepSchedule, err)
	}
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			c.Start()
			log.Info("orphan sweep scheduled", zap.String("schedule", cfg.SweepSchedule), zap.Duration("grace", cfg.SweepGrace))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			select {
			case <-c.Stop().Done():
			case <-ctx.Done():
			}
			return nil
		},
	})
	return nil
}

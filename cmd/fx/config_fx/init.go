package config_fx

import (
	"os"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"inkstudio/internal/config"
	"inkstudio/pkg/logger"
)

var Module = fx.Provide(provideConfig, provideLogger)

func provideConfig() (*config.Config, error) {
	return config.Load()
}

func provideLogger(cfg *config.Config) (*zap.Logger, error) {
	log, err := logger.New(os.Stdout, logger.Config{Format: cfg.LogFormat, Level: cfg.LogLevel})
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(log)
	return log.With(zap.String("env", cfg.Environment)), nil
}

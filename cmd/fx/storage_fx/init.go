package storage_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"inkstudio/internal/config"
	"inkstudio/internal/storage"
)

var Module = fx.Provide(provideFileStore)

func provideFileStore(cfg *config.Config, log *zap.Logger) (storage.FileStore, error) {
	log.Info("opening file store", zap.String("backend", cfg.StorageBackend))
	return storage.Open(cfg)
}

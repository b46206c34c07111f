package storage

import (
	"inkstudio/internal/config"
)

// DiskURLPrefix is where the HTTP server mounts UPLOAD_ROOT.
const DiskURLPrefix = "/uploads"

// Open returns the store selected by STORAGE_BACKEND.
func Open(cfg *config.Config) (FileStore, error) {
	switch cfg.StorageBackend {
	case config.BackendSupabase:
		return NewSupabaseStore(cfg.SupabaseURL, cfg.SupabaseKey, cfg.SupabaseBucket), nil
	default:
		return NewDiskStore(cfg.UploadRoot, DiskURLPrefix)
	}
}

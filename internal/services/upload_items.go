package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"inkstudio/internal/models/db_models"
	"inkstudio/internal/storage"
	"inkstudio/pkg/utils"
)

// UploadItem is one already-decoded image.
type UploadItem struct {
	Name        string
	ContentType string
	Data        []byte
}

// EventPublisher receives healing workflow events. realtime.Hub implements it.
type EventPublisher interface {
	Publish(topic, eventType string, data interface{})
}

type nopPublisher struct{}

func (nopPublisher) Publish(string, string, interface{}) {}

func validateItems(items []UploadItem, maxBytes int64) error {
	if len(items) == 0 {
		return utils.Validationf("at least one image is required")
	}
	for i, it := range items {
		if len(it.Data) == 0 {
			return utils.Validationf("image %d is empty", i)
		}
		if maxBytes > 0 && int64(len(it.Data)) > maxBytes {
			return utils.Validationf("image %d exceeds %d bytes", i, maxBytes)
		}
	}
	return nil
}

// writeFiles stores every item before any row is written. A failure leaves
// the files already written behind; the sweep removes them later.
func writeFiles(ctx context.Context, store storage.FileStore, log *zap.Logger, kind db_models.ImageKind, items []UploadItem) ([]storage.StoredFile, error) {
	out := make([]storage.StoredFile, 0, len(items))
	for _, it := range items {
		name := storage.NewFileName(it.ContentType, it.Name)
		saved, err := store.Save(ctx, kind, name, it.Data, it.ContentType)
		if err != nil {
			log.Error("writing upload", zap.String("kind", kind.String()), zap.String("file", name), zap.Error(err))
			return nil, fmt.Errorf("%w: %v", utils.ErrUploadFailed, err)
		}
		out = append(out, saved)
	}
	return out, nil
}

// buildImages turns stored files into rows stamped by clock. Rows of one
// batch share nothing but the owner, so each gets its own timestamp and
// position.
func buildImages(files []storage.StoredFile, items []UploadItem, clock utils.Clock, kind db_models.ImageKind, clientID, artistID, comment *string) []db_models.Image {
	rows := make([]db_models.Image, len(files))
	for i, f := range files {
		filename := items[i].Name
		if filename == "" {
			filename = f.Name
		}
		rows[i] = db_models.Image{
			BaseModel: db_models.BaseModel{CreatedAt: clock()},
			ClientID:  clientID,
			ArtistID:  artistID,
			Kind:      kind,
			Filename:  filename,
			Path:      f.Path,
			Comment:   comment,
			Position:  i,
		}
	}
	return rows
}

func translateDBError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return utils.ErrConflict
	}
	return utils.DatabaseError(err)
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

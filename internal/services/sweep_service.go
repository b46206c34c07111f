package services

import (
	"context"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"inkstudio/internal/models/db_models"
	"inkstudio/internal/repositories"
	"inkstudio/internal/storage"
	"inkstudio/pkg/utils"
)

type SweepReport struct {
	Scanned int
	Removed []string
	// Kept counts unreferenced files still inside the grace period.
	Kept int
}

type SweepServiceInterface interface {
	// Sweep removes stored files that no image row references and that are
	// older than grace. Files are written before their rows, so a recent
	// unreferenced file may belong to an upload still in flight.
	Sweep(ctx context.Context, grace time.Duration) (*SweepReport, error)
}

type SweepService struct {
	images repositories.ImageRepository
	store  storage.FileStore
	clock  utils.Clock
	log    *zap.Logger
}

func NewSweepService(images repositories.ImageRepository, store storage.FileStore, clock utils.Clock, log *zap.Logger) SweepServiceInterface {
	if clock == nil {
		clock = utils.NowUTC
	}
	return &SweepService{images: images, store: store, clock: clock, log: log.Named("sweep")}
}

func (s *SweepService) Sweep(ctx context.Context, grace time.Duration) (*SweepReport, error) {
	if grace <= 0 {
		return nil, utils.Validationf("sweep grace must be positive, got %s", grace)
	}

	// Files are listed before rows are loaded: a row committed in between
	// then still shows up as referenced.
	var (
		files []storage.FileInfo
		errs  error
	)
	for _, kind := range db_models.AllImageKinds {
		listed, err := s.store.List(ctx, kind)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		files = append(files, listed...)
	}

	paths, err := s.images.AllPaths(ctx)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	referenced := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		referenced[p] = struct{}{}
	}

	cutoff := s.clock().Add(-grace)
	report := &SweepReport{Scanned: len(files)}
	for _, f := range files {
		if _, ok := referenced[f.Path]; ok {
			continue
		}
		if f.ModTime.After(cutoff) {
			report.Kept++
			continue
		}
		if err := s.store.Remove(ctx, f.Path); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		report.Removed = append(report.Removed, f.Path)
	}

	s.log.Info("orphan sweep finished",
		zap.Int("scanned", report.Scanned),
		zap.Int("removed", len(report.Removed)),
		zap.Int("kept", report.Kept),
		zap.Int("errors", len(multierr.Errors(errs))))
	return report, errs
}

package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"inkstudio/internal/infra/infratest"
	"inkstudio/internal/models/db_models"
	"inkstudio/internal/models/request_models"
	"inkstudio/internal/models/response_models"
	"inkstudio/internal/repositories"
	"inkstudio/internal/storage"
	mem "inkstudio/pkg/memcache"
	"inkstudio/pkg/utils"
)

var epoch = time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

type publishedEvent struct {
	Topic string
	Type  string
	Data  interface{}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(topic, eventType string, data interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Topic: topic, Type: eventType, Data: data})
}

func (p *recordingPublisher) Events() []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]publishedEvent(nil), p.events...)
}

// flakyStore fails every Save after the first failAfter calls.
type flakyStore struct {
	storage.FileStore
	mu        sync.Mutex
	saves     int
	failAfter int
}

func (f *flakyStore) Save(ctx context.Context, kind db_models.ImageKind, name string, data []byte, ct string) (storage.StoredFile, error) {
	f.mu.Lock()
	f.saves++
	n := f.saves
	f.mu.Unlock()
	if n > f.failAfter {
		return storage.StoredFile{}, errors.New("disk full")
	}
	return f.FileStore.Save(ctx, kind, name, data, ct)
}

type harness struct {
	db        *gorm.DB
	store     *storage.DiskStore
	publisher *recordingPublisher
	clock     utils.Clock

	studios  repositories.StudioRepository
	artists  repositories.ArtistRepository
	clients  repositories.ClientRepository
	images   repositories.ImageRepository
	healingR repositories.HealingRepository

	identity     IdentityServiceInterface
	relationship RelationshipServiceInterface
	assets       AssetServiceInterface
	healing      HealingServiceInterface
	overview     OverviewServiceInterface
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWithStore(t, nil)
}

// newHarnessWithStore wraps the disk store with wrap when it is non-nil.
func newHarnessWithStore(t *testing.T, wrap func(storage.FileStore) storage.FileStore) *harness {
	t.Helper()
	db := infratest.NewTestDB(t)
	disk, err := storage.NewDiskStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	var store storage.FileStore = disk
	if wrap != nil {
		store = wrap(disk)
	}

	h := &harness{
		db:        db,
		store:     disk,
		publisher: &recordingPublisher{},
		clock:     utils.SteppingClock(epoch, time.Second),
		studios:   repositories.NewStudioRepository(db),
		artists:   repositories.NewArtistRepository(db),
		clients:   repositories.NewClientRepository(db),
		images:    repositories.NewImageRepository(db),
		healingR:  repositories.NewHealingRepository(db),
	}
	log := zap.NewNop()
	appts := repositories.NewAppointmentRepository(db)

	h.identity = NewIdentityService(h.studios, h.artists, h.clients, mem.NewTTLCache[response_models.StudioTheme](), time.Minute, log)
	h.relationship = NewRelationshipService(h.clients, h.artists, appts, log)
	h.assets = NewAssetService(AssetServiceParams{
		Images: h.images, Clients: h.clients, Artists: h.artists, Appointments: appts,
		Healing: h.healingR, Store: store, Publisher: h.publisher, Clock: h.clock, MaxBytes: 1024, Log: log,
	})
	h.healing = NewHealingService(HealingServiceParams{
		Healing: h.healingR, Clients: h.clients, Artists: h.artists, Store: store,
		Publisher: h.publisher, Clock: h.clock, MaxBytes: 1024, Log: log,
	})
	h.overview = NewOverviewService(repositories.NewOverviewRepository(db), h.studios, h.artists, h.clients, h.healingR, store)
	return h
}

func (h *harness) studio(t *testing.T, id string) {
	t.Helper()
	require.NoError(t, h.identity.CreateStudio(context.Background(), request_models.StudioInput{
		ID:      id,
		Name:    "Studio " + id,
		Manager: &request_models.ManagerInput{User: "boss", Password: "secret"},
		Theme:   request_models.StudioThemeInput{PrimaryColor: "#111", Bg: "paper.png"},
	}))
}

func (h *harness) artist(t *testing.T, id, studioID string) {
	t.Helper()
	_, err := h.identity.CreateArtist(context.Background(), id, "", "devpass", studioID)
	require.NoError(t, err)
}

func (h *harness) client(t *testing.T, id, name, studioID, artistID string) {
	t.Helper()
	_, err := h.identity.CreateClient(context.Background(), id, name, "devpass", studioID, artistID)
	require.NoError(t, err)
}

func pngs(n int) []UploadItem {
	items := make([]UploadItem, n)
	for i := range items {
		items[i] = UploadItem{Name: "photo.png", ContentType: "image/png", Data: []byte{0x89, 'P', 'N', 'G', byte(i)}}
	}
	return items
}

func countImages(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&db_models.Image{}).Count(&n).Error)
	return n
}

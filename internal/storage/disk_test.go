package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkstudio/internal/models/db_models"
)

func TestDiskStore_SaveListRemove(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	store, err := NewDiskStore(root, "/uploads/")
	require.NoError(t, err)

	for _, kind := range db_models.AllImageKinds {
		assert.DirExists(t, filepath.Join(root, kind.String()))
	}

	saved, err := store.Save(ctx, db_models.KindIdea, "a.png", []byte("png"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "idea/a.png", saved.Path)
	assert.Equal(t, "/uploads/idea/a.png", store.URL(saved.Path))

	data, err := os.ReadFile(filepath.Join(root, "idea", "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))

	_, err = store.Save(ctx, db_models.KindIdea, "a.png", []byte("again"), "image/png")
	assert.Error(t, err, "existing files are never overwritten")

	files, err := store.List(ctx, db_models.KindIdea)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "idea/a.png", files[0].Path)

	require.NoError(t, store.Remove(ctx, saved.Path))
	require.NoError(t, store.Remove(ctx, saved.Path), "removing a missing file is not an error")
	assert.NoFileExists(t, filepath.Join(root, "idea", "a.png"))
}

func TestDiskStore_RejectsEscapingPaths(t *testing.T) {
	root := t.TempDir()
	store, err := NewDiskStore(root, "/uploads")
	require.NoError(t, err)

	assert.Error(t, store.Remove(context.Background(), "../etc/passwd"))
	for _, name := range []string{"../x.png", "sub/x.png", `sub\x.png`, "..", ""} {
		_, err = store.Save(context.Background(), db_models.KindIdea, name, []byte("x"), "")
		assert.ErrorIs(t, err, ErrInvalidName, name)
	}
	assert.NoFileExists(t, filepath.Join(root, "x.png"))
}

func TestNewFileName(t *testing.T) {
	assert.True(t, strings.HasSuffix(NewFileName("image/png", ""), ".png"))
	assert.True(t, strings.HasSuffix(NewFileName("image/jpeg", "photo.png"), ".jpg"))
	assert.True(t, strings.HasSuffix(NewFileName("image/svg+xml", ""), ".svg"))
	assert.True(t, strings.HasSuffix(NewFileName("", "Scan.WEBP"), ".webp"))
	assert.True(t, strings.HasSuffix(NewFileName("application/octet-stream", "noext"), ".bin"))
	assert.NotEqual(t, NewFileName("image/png", ""), NewFileName("image/png", ""))
}

package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	storage_go "github.com/supabase-community/storage-go"

	"inkstudio/internal/models/db_models"
)

const listLimit = 1000

// bucketAPI is the part of the storage-go client the store uses.
type bucketAPI interface {
	UploadFile(bucketID, relativePath string, data io.Reader, opts ...storage_go.FileOptions) (storage_go.FileUploadResponse, error)
	ListFiles(bucketID, queryPath string, options storage_go.FileSearchOptions) ([]storage_go.FileObject, error)
	RemoveFile(bucketID string, paths []string) ([]storage_go.FileUploadResponse, error)
}

// SupabaseStore keeps files in a Supabase Storage bucket using the same
// "<kind>/<name>" keys as DiskStore.
type SupabaseStore struct {
	client  bucketAPI
	bucket  string
	baseURL string
}

func NewSupabaseStore(supabaseURL, serviceRoleKey, bucket string) *SupabaseStore {
	baseURL := strings.TrimRight(supabaseURL, "/")
	return &SupabaseStore{
		client:  storage_go.NewClient(baseURL+"/storage/v1", serviceRoleKey, nil),
		bucket:  bucket,
		baseURL: baseURL,
	}
}

func (s *SupabaseStore) Save(_ context.Context, kind db_models.ImageKind, name string, data []byte, contentType string) (StoredFile, error) {
	if err := CheckName(name); err != nil {
		return StoredFile{}, err
	}
	rel := RelPath(kind, name)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	upsert := false
	_, err := s.client.UploadFile(s.bucket, rel, bytes.NewReader(data), storage_go.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return StoredFile{}, fmt.Errorf("uploading %s: %w", rel, err)
	}
	return StoredFile{Path: rel, Name: name}, nil
}

func (s *SupabaseStore) List(_ context.Context, kind db_models.ImageKind) ([]FileInfo, error) {
	var out []FileInfo
	for offset := 0; ; offset += listLimit {
		files, err := s.client.ListFiles(s.bucket, kind.String(), storage_go.FileSearchOptions{
			Limit:         listLimit,
			Offset:        offset,
			SortByOptions: storage_go.SortBy{Column: "name", Order: "asc"},
		})
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", kind, err)
		}
		for _, f := range files {
			// Entries without a parseable timestamp are skipped so the sweep
			// never removes a file it cannot age.
			created, err := time.Parse(time.RFC3339, f.CreatedAt)
			if err != nil {
				continue
			}
			out = append(out, FileInfo{Path: RelPath(kind, f.Name), ModTime: created})
		}
		if len(files) < listLimit {
			return out, nil
		}
	}
}

func (s *SupabaseStore) Remove(_ context.Context, relPath string) error {
	_, err := s.client.RemoveFile(s.bucket, []string{relPath})
	return err
}

func (s *SupabaseStore) URL(relPath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, relPath)
}

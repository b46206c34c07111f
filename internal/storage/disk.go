package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"inkstudio/internal/models/db_models"
)

// DiskStore writes files under Root/<kind>/ and serves them under URLPrefix.
type DiskStore struct {
	Root      string
	URLPrefix string
}

func NewDiskStore(root, urlPrefix string) (*DiskStore, error) {
	for _, kind := range db_models.AllImageKinds {
		if err := os.MkdirAll(filepath.Join(root, kind.String()), 0o755); err != nil {
			return nil, fmt.Errorf("creating upload dir for %s: %w", kind, err)
		}
	}
	return &DiskStore{Root: root, URLPrefix: strings.TrimRight(urlPrefix, "/")}, nil
}

func (s *DiskStore) Save(_ context.Context, kind db_models.ImageKind, name string, data []byte, _ string) (StoredFile, error) {
	if err := CheckName(name); err != nil {
		return StoredFile{}, err
	}
	rel := RelPath(kind, name)
	target, err := s.resolve(rel)
	if err != nil {
		return StoredFile{}, err
	}
	// O_EXCL: names are generated, a collision means something is wrong.
	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return StoredFile{}, err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return StoredFile{}, err
	}
	if err := f.Close(); err != nil {
		return StoredFile{}, err
	}
	return StoredFile{Path: rel, Name: name}, nil
}

func (s *DiskStore) List(_ context.Context, kind db_models.ImageKind) ([]FileInfo, error) {
	entries, err := os.ReadDir(filepath.Join(s.Root, kind.String()))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	out := make([]FileInfo, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, err
		}
		out = append(out, FileInfo{Path: RelPath(kind, e.Name()), ModTime: info.ModTime()})
	}
	return out, nil
}

func (s *DiskStore) Remove(_ context.Context, relPath string) error {
	target, err := s.resolve(relPath)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *DiskStore) URL(relPath string) string {
	return s.URLPrefix + "/" + relPath
}

// resolve maps a relative path into Root and refuses anything that escapes it.
func (s *DiskStore) resolve(relPath string) (string, error) {
	clean := path.Clean("/" + relPath)
	if clean == "/" || strings.Contains(relPath, "..") {
		return "", fmt.Errorf("invalid storage path %q", relPath)
	}
	return filepath.Join(s.Root, filepath.FromSlash(clean)), nil
}

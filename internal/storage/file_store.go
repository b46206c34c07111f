// Package storage keeps uploaded image bytes. Files live under one directory
// (or key prefix) per image kind and are referenced from image rows by their
// relative path, for example "idea/3f2c....png".
package storage

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"inkstudio/internal/models/db_models"
)

type StoredFile struct {
	// Path is relative to the store root: "<kind>/<name>".
	Path string
	Name string
}

type FileInfo struct {
	Path    string
	ModTime time.Time
}

type FileStore interface {
	Save(ctx context.Context, kind db_models.ImageKind, name string, data []byte, contentType string) (StoredFile, error)
	List(ctx context.Context, kind db_models.ImageKind) ([]FileInfo, error)
	Remove(ctx context.Context, relPath string) error
	URL(relPath string) string
}

var extPattern = regexp.MustCompile(`^[a-z0-9]{1,8}$`)

// NewFileName returns "<uuid>.<ext>". The extension comes from the content
// type when it is an image type, then from the original name, else "bin".
func NewFileName(contentType, originalName string) string {
	return uuid.NewString() + "." + extension(contentType, originalName)
}

func extension(contentType, originalName string) string {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		if sub, ok := strings.CutPrefix(mediaType, "image/"); ok {
			sub = strings.SplitN(sub, "+", 2)[0]
			if sub == "jpeg" {
				sub = "jpg"
			}
			if extPattern.MatchString(sub) {
				return sub
			}
		}
	}
	if ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(originalName), ".")); extPattern.MatchString(ext) {
		return ext
	}
	return "bin"
}

// ErrInvalidName is returned for file names that are not a single path
// element.
var ErrInvalidName = errors.New("invalid storage file name")

// CheckName rejects names that would leave the kind directory once joined.
func CheckName(name string) error {
	if name == "" || name == "." || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// RelPath joins kind and name into a store-relative path.
func RelPath(kind db_models.ImageKind, name string) string {
	return path.Join(kind.String(), name)
}

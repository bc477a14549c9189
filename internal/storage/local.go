package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalPhotoStore writes photos into a directory that is served under urlPrefix.
type LocalPhotoStore struct {
	dir       string
	urlPrefix string
}

func NewLocalPhotoStore(dir string, urlPrefix string) (*LocalPhotoStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("photo directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create photo directory: %w", err)
	}
	prefix := "/" + strings.Trim(strings.TrimSpace(urlPrefix), "/")
	return &LocalPhotoStore{dir: dir, urlPrefix: prefix}, nil
}

func (store *LocalPhotoStore) Dir() string {
	return store.dir
}

// Save writes the data to a temp file in the target directory and renames it into place,
// so readers never see a partial photo.
func (store *LocalPhotoStore) Save(ctx context.Context, extension string, _ string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := newObjectName(extension)
	temp, err := os.CreateTemp(store.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp photo: %w", err)
	}
	tempName := temp.Name()
	defer func() {
		_ = os.Remove(tempName)
	}()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		return "", fmt.Errorf("write temp photo: %w", err)
	}
	if err := temp.Close(); err != nil {
		return "", fmt.Errorf("close temp photo: %w", err)
	}
	if err := os.Chmod(tempName, 0o644); err != nil {
		return "", fmt.Errorf("chmod photo: %w", err)
	}
	if err := os.Rename(tempName, filepath.Join(store.dir, name)); err != nil {
		return "", fmt.Errorf("move photo into place: %w", err)
	}

	return path.Join(store.urlPrefix, name), nil
}

func newObjectName(extension string) string {
	extension = strings.ToLower(strings.TrimSpace(extension))
	if extension != "" && !strings.HasPrefix(extension, ".") {
		extension = "." + extension
	}
	return uuid.NewString() + extension
}

package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/TaiyoMatsuda/board-app/internal/config"
	"github.com/TaiyoMatsuda/board-app/internal/domain"
)

// Local stores files on disk below BasePath; the API serves them under
// MediaURL.
type Local struct {
	basePath  string
	mediaURL  string
	staticURL string
	maxBytes  int64
}

func NewLocal(conf *config.StorageConfig) *Local {
	return &Local{
		basePath:  conf.BasePath,
		mediaURL:  conf.MediaURL,
		staticURL: conf.StaticURL,
		maxBytes:  conf.MaxUploadBytes,
	}
}

func (s *Local) Save(_ context.Context, kind Kind, upload domain.Upload) (string, error) {
	obj, err := prepare(kind, upload, s.maxBytes)
	if err != nil {
		return "", err
	}

	full := s.path(obj.key)
	if err = os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("os.MkdirAll -> %w", err)
	}

	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("os.Create -> %w", err)
	}
	defer f.Close()

	if _, err = io.Copy(f, obj.reader()); err != nil {
		return "", fmt.Errorf("io.Copy -> %w", err)
	}

	return obj.key, nil
}

func (s *Local) Delete(_ context.Context, key string) error {
	if key == "" {
		return nil
	}

	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("os.Remove -> %w", err)
	}

	return nil
}

func (s *Local) URL(key, placeholder string) string {
	if key == "" {
		return joinURL(s.staticURL, placeholder)
	}

	return joinURL(s.mediaURL, key)
}

// Root is the directory the API serves under MediaURL.
func (s *Local) Root() string {
	return s.basePath
}

func (s *Local) MediaURL() string {
	return s.mediaURL
}

func (s *Local) path(key string) string {
	return filepath.Join(s.basePath, filepath.FromSlash(key))
}

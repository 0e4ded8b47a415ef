package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/TaiyoMatsuda/board-app/internal/config"
	"github.com/TaiyoMatsuda/board-app/internal/domain"
)

type Kind string

const (
	KindUser  Kind = "user"
	KindEvent Kind = "event"
)

const (
	DriverLocal = "local"
	DriverS3    = "s3"

	keyPrefix = "uploads"
)

var (
	ErrFileTooLarge         = errors.New("file too large")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrEmptyFile            = errors.New("empty file")
)

var allowedMimeTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
}

// Storage keeps uploaded images under uuid based keys such as
// uploads/user/<uuid>.png and resolves keys to public URLs.
type Storage interface {
	Save(ctx context.Context, kind Kind, upload domain.Upload) (string, error)
	Delete(ctx context.Context, key string) error
	// URL resolves key, or the placeholder image path when key is empty.
	URL(key, placeholder string) string
}

func New(conf *config.StorageConfig) (Storage, error) {
	switch conf.Driver {
	case DriverS3:
		return NewS3(conf)
	case DriverLocal, "":
		return NewLocal(conf), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", conf.Driver)
	}
}

type object struct {
	key         string
	contentType string
	body        []byte
}

// prepare reads the upload, checks its size and sniffed content type, and
// names it.
func prepare(kind Kind, upload domain.Upload, maxBytes int64) (object, error) {
	if upload.Content == nil {
		return object{}, ErrEmptyFile
	}
	if maxBytes > 0 && upload.Size > maxBytes {
		return object{}, ErrFileTooLarge
	}

	r := upload.Content
	if maxBytes > 0 {
		r = io.LimitReader(r, maxBytes+1)
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return object{}, fmt.Errorf("io.ReadAll -> %w", err)
	}
	if len(body) == 0 {
		return object{}, ErrEmptyFile
	}
	if maxBytes > 0 && int64(len(body)) > maxBytes {
		return object{}, ErrFileTooLarge
	}

	mtype := mimetype.Detect(body)
	if !mimetype.EqualsAny(mtype.String(), allowedMimeTypes...) {
		return object{}, fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mtype.String())
	}

	ext := mtype.Extension()
	if ext == "" {
		ext = strings.ToLower(filepath.Ext(upload.Filename))
	}

	return object{
		key:         path.Join(keyPrefix, string(kind), uuid.NewString()+ext),
		contentType: mtype.String(),
		body:        body,
	}, nil
}

func (o object) reader() io.ReadSeeker {
	return bytes.NewReader(o.body)
}

func joinURL(base, p string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(p, "/")
}

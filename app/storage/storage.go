package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// Storage stores catalog images.
type Storage interface {
	// Save stores the object under key and returns its public URL.
	Save(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

type Config struct {
	Type      string // local, s3
	BasePath  string // local
	BaseURL   string // public URL prefix
	Bucket    string // s3
	Region    string // s3
	AccessKey string
	SecretKey string
	Endpoint  string // custom S3-compatible endpoint
}

func New(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "local", "":
		return NewLocalStorage(cfg)
	case "s3":
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}

// ObjectKey builds "<tenant>/<kind>/<uuid><ext>".
func ObjectKey(tenant, kind, ext string) string {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return path.Join(tenant, kind, uuid.NewString()+ext)
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}

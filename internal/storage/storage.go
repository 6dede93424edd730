package storage

import (
	"context"
	"fmt"
	"mime/multipart"

	"anpere-portal/internal/config"
)

// PhotoStore saves an uploaded photo and returns a stable URL the caller
// stores verbatim. The bytes are passed through, never interpreted.
type PhotoStore interface {
	Save(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error)
}

// New builds the store selected by STORAGE_DRIVER
func New(cfg config.StorageConfig) (PhotoStore, error) {
	switch cfg.Driver {
	case "local":
		return NewLocalStore(cfg.LocalDir, cfg.PublicURL)
	case "s3":
		return NewS3Store(cfg.S3Bucket, cfg.S3Region)
	default:
		return nil, fmt.Errorf("unknown storage driver: %q", cfg.Driver)
	}
}

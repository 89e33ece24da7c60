// internal/adapters/storage/storage.go
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ammerola/procure-be/internal/core/ports"
	"github.com/ammerola/procure-be/internal/pkg/config"
)

// Storage is a FileStorage that can also report its own health
type Storage interface {
	ports.FileStorage
	Ping(ctx context.Context) error
}

// New builds the attachment storage selected by cfg.Driver
func New(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (Storage, error) {
	switch cfg.Driver {
	case "s3":
		return NewS3Storage(ctx, &S3Config{
			Region:          cfg.Region,
			Bucket:          cfg.Bucket,
			AccessKeyID:     cfg.AccessKeyID,
			SecretAccessKey: cfg.SecretAccessKey,
			Endpoint:        cfg.Endpoint,
			UsePathStyle:    cfg.UsePathStyle,
			KeyPrefix:       cfg.KeyPrefix,
			CreateBucket:    cfg.CreateBucket,
		}, logger)
	case "local":
		return NewLocalStorage(cfg.LocalDir, logger)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// Package storage provides the blob backends behind the media catalog.
package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/narwhalmedia/splice/internal/config"
	"github.com/narwhalmedia/splice/internal/domain/catalog"
)

// New returns the backend selected by cfg.Type
func New(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (catalog.Storage, error) {
	switch cfg.Type {
	case "local":
		return NewLocalStorage(cfg.LocalPath, logger)
	case "s3":
		return NewS3Storage(ctx, cfg.S3Config, logger)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", cfg.Type)
	}
}

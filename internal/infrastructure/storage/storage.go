package storage

import (
	"context"
	"fmt"

	"crowdfund.backend/internal/config"
	"crowdfund.backend/internal/domain/repositories"
)

// New builds the blob store selected by STORAGE_DRIVER.
func New(ctx context.Context, cfg config.StorageConfig) (repositories.BlobStore, error) {
	switch cfg.Driver {
	case config.StorageDriverDisk, "":
		return NewDiskStore(cfg.Dir)
	case config.StorageDriverS3:
		return NewS3Store(ctx, cfg)
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}

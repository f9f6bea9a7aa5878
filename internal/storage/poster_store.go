package storage

import (
	"context"
	"fmt"
	"io"

	"afisha/internal/config"
)

// PosterStore persists accepted poster files. Save returns the public
// reference rendered into pages; Remove and List operate on stored names
// (the base name of a reference) and exist for the orphan sweep.
type PosterStore interface {
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, name string) error
	List(ctx context.Context) ([]string, error)
}

func New(storageCfg config.StorageConfig, uploadCfg config.UploadConfig) (PosterStore, error) {
	switch storageCfg.Backend {
	case "", "disk":
		return NewDiskStore(uploadCfg.Dir)
	case "s3":
		return NewObjectStore(storageCfg)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", storageCfg.Backend)
	}
}

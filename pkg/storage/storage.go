package storage

import (
	"context"
	"fmt"
	"path"
	"strings"

	"biz-directory/pkg/utils"

	"go.uber.org/zap"
)

// BlobStore persists uploaded files and generated QR images. Put returns the
// path clients use to fetch the object.
type BlobStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, key string) error
	// DeletePrefix removes every blob below the directory prefix.
	DeletePrefix(ctx context.Context, prefix string) error
}

// New builds the store selected by STORAGE_DRIVER.
func New(ctx context.Context, cfg utils.StorageConfig, log *zap.Logger) (BlobStore, error) {
	switch cfg.Driver {
	case "s3":
		return NewS3Store(ctx, cfg, log)
	case "local", "":
		return NewLocalStore(cfg.LocalDir, cfg.PublicPrefix, log), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}

// CleanKey rejects keys that would escape the store root.
func CleanKey(key string) (string, error) {
	cleaned := path.Clean("/" + key)
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "" || cleaned == "." {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return cleaned, nil
}

// ExtensionFor maps the accepted image content types to a file extension.
func ExtensionFor(contentType string) (string, bool) {
	switch contentType {
	case "image/jpeg":
		return ".jpg", true
	case "image/png":
		return ".png", true
	case "image/webp":
		return ".webp", true
	case "image/gif":
		return ".gif", true
	}
	return "", false
}

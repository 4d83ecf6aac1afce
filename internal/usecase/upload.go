package usecase

import (
	"context"
	"fmt"

	"biz-directory/internal/dto/request"
	"biz-directory/pkg/apperror"
	"biz-directory/pkg/storage"

	"github.com/google/uuid"
)

// MaxUploadBytes bounds every image upload.
const MaxUploadBytes = 5 << 20

// storeImage writes an uploaded image below dir and returns its public path.
func storeImage(ctx context.Context, blobs storage.BlobStore, dir string, upload *request.FileUpload) (string, error) {
	if upload == nil || len(upload.Data) == 0 {
		return "", apperror.InvalidField("file", "This field is required")
	}
	if len(upload.Data) > MaxUploadBytes {
		return "", apperror.InvalidField("file", fmt.Sprintf("Maximum size is %d bytes", MaxUploadBytes))
	}
	ext, ok := storage.ExtensionFor(upload.ContentType)
	if !ok {
		return "", apperror.InvalidField("file", "Must be a jpeg, png, webp or gif image")
	}

	key := fmt.Sprintf("%s/%s%s", dir, uuid.NewString(), ext)
	path, err := blobs.Put(ctx, key, upload.ContentType, upload.Data)
	if err != nil {
		return "", apperror.Upstream("blob store", err)
	}
	return path, nil
}

// Package adapters bridges bounded contexts without letting them import
// each other directly.
package adapters

import (
	"context"
	"io"

	"promopro_backend/internal/adapters/storage"
	"promopro_backend/platform/apperr"
	"promopro_backend/platform/config"
)

const artworkFolder = "artwork"

// ArtworkStorageAdapter stores visitor artwork uploads in the artwork
// samples bucket. It satisfies the quotes service's ArtworkStorage port.
type ArtworkStorageAdapter struct {
	svc    storage.StorageService
	bucket string
}

// NewArtworkStorageAdapter wires object storage into the quotes flow.
// svc may be nil when MinIO is not configured; uploads then fail with a
// validation error instead of a panic.
func NewArtworkStorageAdapter(svc storage.StorageService, cfg config.MinIOConfig) *ArtworkStorageAdapter {
	return &ArtworkStorageAdapter{
		svc:    svc,
		bucket: cfg.GetMinioBucketArtworkSamples(),
	}
}

// UploadArtworkSample validates and stores one artwork file, returning its
// object key.
func (a *ArtworkStorageAdapter) UploadArtworkSample(ctx context.Context, filename, contentType string, size int64, r io.Reader) (string, error) {
	if a.svc == nil {
		return "", apperr.Validation("artwork uploads are not enabled")
	}
	if err := a.svc.ValidateContentType(contentType); err != nil {
		return "", apperr.Validation(err.Error())
	}
	if err := a.svc.ValidateFileSize(size); err != nil {
		return "", apperr.Validation(err.Error())
	}
	return a.svc.UploadFile(ctx, a.bucket, artworkFolder, filename, contentType, r, size)
}

// ArtworkSampleURL returns a presigned download URL for a stored artwork
// object so the storefront can preview the upload.
func (a *ArtworkStorageAdapter) ArtworkSampleURL(ctx context.Context, fileKey string) (string, error) {
	if a.svc == nil {
		return "", apperr.Validation("artwork uploads are not enabled")
	}
	presigned, err := a.svc.GenerateDownloadURL(ctx, a.bucket, fileKey)
	if err != nil {
		return "", err
	}
	return presigned.URL, nil
}

// RemoveArtworkSample deletes a stored artwork object. Used when a visitor
// replaces a pending upload so superseded objects do not accumulate.
func (a *ArtworkStorageAdapter) RemoveArtworkSample(ctx context.Context, fileKey string) error {
	if a.svc == nil {
		return nil
	}
	return a.svc.DeleteObject(ctx, a.bucket, fileKey)
}

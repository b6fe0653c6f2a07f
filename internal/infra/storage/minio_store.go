package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"legal-docgen/internal/config"
	"legal-docgen/internal/domain"
	"legal-docgen/internal/domain/ports/adapter"
	"legal-docgen/internal/infra/metrics"
)

var _ adapter.ArtifactStore = (*MinioStore)(nil)

// MinioStore persists rendered artifacts in object storage. Objects are
// content-addressed by generation id ("<generationID>/<fileName>"), so a
// re-run of the same generation overwrites rather than duplicates.
type MinioStore struct {
	client    *minio.Client
	bucket    string
	urlExpiry time.Duration
}

func NewMinioStore(cfg *config.StorageConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	return &MinioStore{client: client, bucket: cfg.Bucket, urlExpiry: cfg.URLExpiry}, nil
}

// EnsureBucket creates the bucket if it doesn't exist.
func (s *MinioStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
	}
	return nil
}

// Persist uploads the binary and tags it with the record metadata, then
// returns a presigned download URL. The two steps are expected to succeed
// together; a metadata failure after a successful upload is reported with
// both step names and leaves the object in place.
func (s *MinioStore) Persist(ctx context.Context, req adapter.PersistRequest) (string, error) {
	object := objectName(req.GenerationID, req.FileName)

	_, err := s.client.PutObject(ctx, s.bucket, object,
		bytes.NewReader(req.Data), int64(len(req.Data)),
		minio.PutObjectOptions{
			ContentType: req.ContentType,
			UserMetadata: map[string]string{
				"owner":         req.UserID,
				"category":      "generated-contract",
				"contract-type": req.ContractType,
				"description":   req.Description,
			},
			UserTags: map[string]string{
				"contract-type": req.ContractType,
			},
		})
	if err != nil {
		metrics.ObserveArtifactUpload(len(req.Data), false)
		return "", fmt.Errorf("%w: upload %s: %v", domain.ErrPersistence, object, err)
	}
	metrics.ObserveArtifactUpload(len(req.Data), true)

	url, err := s.client.PresignedGetObject(ctx, s.bucket, object, s.urlExpiry, nil)
	if err != nil {
		return "", fmt.Errorf("%w: presign %s after successful upload: %v", domain.ErrPersistence, object, err)
	}
	return url.String(), nil
}

func (s *MinioStore) Remove(ctx context.Context, generationID, fileName string) error {
	object := objectName(generationID, fileName)
	if err := s.client.RemoveObject(ctx, s.bucket, object, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("%w: remove %s: %v", domain.ErrPersistence, object, err)
	}
	return nil
}

func objectName(generationID, fileName string) string {
	return generationID + "/" + fileName
}

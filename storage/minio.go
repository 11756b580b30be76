// Package storage keeps album cover images on MinIO.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"OpenMusic/config"
	"OpenMusic/logger"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// CoverStore uploads album covers to a MinIO bucket and returns their
// public URLs.
type CoverStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewCoverStore connects to MinIO and ensures the bucket exists.
func NewCoverStore(cfg *config.Config) (*CoverStore, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		logger.Info("Created MinIO bucket", logger.String("bucket", cfg.MinioBucket))
	}

	return &CoverStore{
		client:    client,
		bucket:    cfg.MinioBucket,
		publicURL: cfg.MinioPublicURL,
	}, nil
}

// SaveCover uploads a cover image and returns its public URL. The
// object name is randomized so re-uploads never collide.
func (s *CoverStore) SaveCover(ctx context.Context, albumID, filename, contentType string, size int64, r io.Reader) (string, error) {
	objectName := fmt.Sprintf("covers/%s/%s%s", albumID, uuid.NewString(), filepath.Ext(filename))

	_, err := s.client.PutObject(ctx, s.bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload cover: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, objectName), nil
}

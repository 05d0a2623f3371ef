package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Mdwaseel/batsdatacollection/internal/config"
)

// opTimeout bounds every remote storage call. The store imposes no timeout
// of its own, so a stuck upload would otherwise hang the save forever.
const opTimeout = 30 * time.Second

// MinioStore talks to any S3-compatible object storage. One client is
// created per process and reused.
type MinioStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinioStore builds the long-lived storage client from configuration.
func NewMinioStore(cfg *config.Config) (*MinioStore, error) {
	client, err := minio.New(cfg.StorageEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.StorageAccessKey, cfg.StorageSecretKey, ""),
		Secure: cfg.StorageUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("storage client: %w", err)
	}

	base := cfg.StoragePublicBaseURL
	if base == "" {
		scheme := "http"
		if cfg.StorageUseSSL {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s", scheme, cfg.StorageEndpoint)
	}

	return &MinioStore{
		client:    client,
		bucket:    cfg.StorageBucket,
		publicURL: strings.TrimRight(base, "/"),
	}, nil
}

func (s *MinioStore) Put(ctx context.Context, path string, data []byte, contentType string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := s.client.PutObject(ctx, s.bucket, path, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("put %s: %w", path, err)
	}
	return nil
}

func (s *MinioStore) Remove(ctx context.Context, path string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := s.client.RemoveObject(ctx, s.bucket, path, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}

// PublicURL composes the public-read URL for an object. The bucket is public,
// so no presigning is involved.
func (s *MinioStore) PublicURL(path string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, path)
}

func (s *MinioStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	ok, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("bucket %q does not exist", s.bucket)
	}
	return nil
}

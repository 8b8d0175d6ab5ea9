package miniostore

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"gitlab.com/stark-bootcamp.net/internal/config"
	"gitlab.com/stark-bootcamp.net/internal/core/ports/primary"
	"gitlab.com/stark-bootcamp.net/internal/core/ports/secondary"
)

var _ secondary.FileStore = (*Store)(nil)

// Store uploads contestant files to a MinIO bucket and hands back public URLs.
type Store struct {
	client  *minio.Client
	bucket  string
	baseURL *url.URL
	logger  primary.Logger
}

func New(cfg *config.StorageConfig, logger primary.Logger) (*Store, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("minio bucket is required")
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client failed: %w", err)
	}

	base := client.EndpointURL()
	if cfg.PublicBaseURL != "" {
		base, err = url.Parse(cfg.PublicBaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid public base url: %w", err)
		}
	}

	return &Store{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: base,
		logger:  logger,
	}, nil
}

// EnsureBucket creates the bucket on first start.
func (s *Store) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("minio bucket check failed: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("minio make bucket failed: %w", err)
	}
	s.logger.Info("Created upload bucket", "bucket", s.bucket)
	return nil
}

func (s *Store) Put(ctx context.Context, obj secondary.Object) (string, error) {
	if obj.Body == nil {
		return "", fmt.Errorf("object body is required")
	}
	if obj.Key == "" {
		return "", fmt.Errorf("object key is required")
	}

	opts := minio.PutObjectOptions{}
	if obj.ContentType != "" {
		opts.ContentType = obj.ContentType
	}
	info, err := s.client.PutObject(ctx, s.bucket, obj.Key, obj.Body, obj.Size, opts)
	if err != nil {
		s.logger.Error("Failed to upload object", "key", obj.Key, "error", err)
		return "", fmt.Errorf("minio put object failed: %w", err)
	}
	s.logger.Debug("Uploaded object", "key", info.Key, "size", info.Size)

	return objectURL(s.baseURL, s.bucket, obj.Key), nil
}

func objectURL(base *url.URL, bucket, key string) string {
	u := *base
	u.Path = path.Join("/", strings.TrimSuffix(base.Path, "/"), bucket, key)
	return u.String()
}

package services

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/Sandeep010-hub/promptcraft-fusion/config"
	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

// OSSStorage puts objects into an Aliyun OSS bucket.
type OSSStorage struct {
	bucket     *oss.Bucket
	bucketName string
	endpoint   string
}

func NewOSSStorage(cfg *config.Config) (*OSSStorage, error) {
	if cfg.OSSEndpoint == "" || cfg.OSSAccessKeyID == "" || cfg.OSSAccessKeySecret == "" {
		return nil, ErrStorageNotConfigured
	}

	timeout := int64(cfg.StorageTimeout.Seconds())
	if timeout <= 0 {
		timeout = 120
	}
	client, err := oss.New(
		cfg.OSSEndpoint,
		cfg.OSSAccessKeyID,
		cfg.OSSAccessKeySecret,
		oss.Timeout(30, timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OSS client: %w", err)
	}

	bucket, err := client.Bucket(ossBucketName(cfg.StorageBucket))
	if err != nil {
		return nil, fmt.Errorf("failed to get bucket: %w", err)
	}

	return &OSSStorage{
		bucket:     bucket,
		bucketName: ossBucketName(cfg.StorageBucket),
		endpoint:   cfg.OSSEndpoint,
	}, nil
}

// ossBucketName maps the logical bucket to a valid OSS name, which may not
// contain underscores.
func ossBucketName(bucket string) string {
	return strings.ReplaceAll(bucket, "_", "-")
}

func (s *OSSStorage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	return s.bucket.PutObject(key, r,
		oss.WithContext(ctx),
		oss.ContentType(contentType),
		oss.ContentLength(size),
	)
}

// PublicURL returns the virtual-hosted URL https://{bucket}.{endpoint}/{key}.
func (s *OSSStorage) PublicURL(key string) string {
	return ossPublicURL(s.endpoint, s.bucketName, key)
}

func ossPublicURL(endpoint, bucket, key string) string {
	scheme := "https"
	host := endpoint
	if parts := strings.SplitN(endpoint, "://", 2); len(parts) == 2 {
		scheme, host = parts[0], parts[1]
	}
	host = strings.TrimRight(host, "/")
	segments := strings.Split(key, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return fmt.Sprintf("%s://%s.%s/%s", scheme, bucket, host, strings.Join(segments, "/"))
}

package minio

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/vietlinker/listing-service/internal/app/config"
)

// PhotoMinioStorage stores listing photos in a MinIO bucket under
// photos/<uuid><ext> keys and returns publicly addressable URLs.
type PhotoMinioStorage struct {
	client *minio.Client
	bucket string
	logger *zap.Logger
}

func NewPhotoMinioStorage(ctx context.Context, cfg config.MinioConfig, logger *zap.Logger) (*PhotoMinioStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", cfg.Endpoint, err)
	}

	if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
		exists, existsErr := client.BucketExists(ctx, cfg.Bucket)
		if existsErr != nil || !exists {
			return nil, fmt.Errorf("failed to create or verify bucket %s: %w", cfg.Bucket, err)
		}
	}

	logger.Info("minio photo storage initialized",
		zap.String("endpoint", cfg.Endpoint),
		zap.String("bucket", cfg.Bucket))

	return &PhotoMinioStorage{
		client: client,
		bucket: cfg.Bucket,
		logger: logger,
	}, nil
}

func (s *PhotoMinioStorage) Upload(ctx context.Context, fileName string, data []byte) (string, error) {
	objectKey := fmt.Sprintf("photos/%s%s", uuid.New().String(), filepath.Ext(fileName))

	_, err := s.client.PutObject(ctx, s.bucket, objectKey, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: http.DetectContentType(data),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object %s to bucket %s: %w", objectKey, s.bucket, err)
	}

	s.logger.Debug("photo uploaded",
		zap.String("bucket", s.bucket),
		zap.String("key", objectKey),
		zap.Int("size_bytes", len(data)))

	return fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, objectKey), nil
}

func (s *PhotoMinioStorage) Delete(ctx context.Context, objectURL string) error {
	objectKey, err := s.objectKeyFromURL(objectURL)
	if err != nil {
		return err
	}

	if err := s.client.RemoveObject(ctx, s.bucket, objectKey, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove object %s from bucket %s: %w", objectKey, s.bucket, err)
	}
	return nil
}

func (s *PhotoMinioStorage) objectKeyFromURL(objectURL string) (string, error) {
	prefix := fmt.Sprintf("%s/%s/", s.client.EndpointURL().String(), s.bucket)
	if !strings.HasPrefix(objectURL, prefix) {
		return "", fmt.Errorf("object URL %s does not belong to bucket %s", objectURL, s.bucket)
	}
	return strings.TrimPrefix(objectURL, prefix), nil
}

package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"adminpanel/internal/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// KeyPrefix is the only prefix the upload helper writes or signs.
const KeyPrefix = "posts/"

type Storage interface {
	UploadImage(ctx context.Context, contentType string, file io.Reader, size int64) (string, error)
	GetImageURL(ctx context.Context, objectName string) (string, error)
	URLExpiry() time.Duration
}

type MinIOClient struct {
	client *minio.Client
	bucket string
	expiry time.Duration
}

func NewMinIOClient(ctx context.Context, cfg *config.Config) (*MinIOClient, error) {
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
		Region: cfg.MinIO.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	m := &MinIOClient{
		client: client,
		bucket: cfg.MinIO.BucketName,
		expiry: cfg.MinIO.URLExpiry,
	}

	if err := m.ensureBucket(ctx, cfg.MinIO.Region); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *MinIOClient) ensureBucket(ctx context.Context, region string) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", m.bucket, err)
	}
	if exists {
		return nil
	}

	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		return fmt.Errorf("create bucket %s: %w", m.bucket, err)
	}
	return nil
}

// ObjectKey returns posts/<uuid>.<ext>, the extension taken from the MIME subtype.
func ObjectKey(contentType string) string {
	ext := "bin"
	if parts := strings.SplitN(contentType, "/", 2); len(parts) == 2 && parts[1] != "" {
		ext = parts[1]
	}
	return fmt.Sprintf("%s%s.%s", KeyPrefix, uuid.New().String(), ext)
}

func (m *MinIOClient) UploadImage(ctx context.Context, contentType string, file io.Reader, size int64) (string, error) {
	objectName := ObjectKey(contentType)

	_, err := m.client.PutObject(ctx, m.bucket, objectName, file, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"uploaded-at": time.Now().Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", fmt.Errorf("upload to minio: %w", err)
	}

	return objectName, nil
}

// GetImageURL presigns a GET for objectName valid for URLExpiry.
func (m *MinIOClient) GetImageURL(ctx context.Context, objectName string) (string, error) {
	signed, err := m.client.PresignedGetObject(ctx, m.bucket, objectName, m.expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", objectName, err)
	}
	return signed.String(), nil
}

func (m *MinIOClient) URLExpiry() time.Duration {
	return m.expiry
}

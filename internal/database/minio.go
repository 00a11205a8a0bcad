package database

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"path"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOClient wraps a MinIO connection scoped to a single bucket.
type MinIOClient struct {
	client *minio.Client
	bucket string
}

// NewMinIOClient connects to MinIO and makes sure the bucket exists.
func NewMinIOClient(endpoint, accessKey, secretKey, bucket string) (*MinIOClient, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	exists, err := client.BucketExists(context.Background(), bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(context.Background(), bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	slog.Info("MinIO connection established", "bucket", bucket)
	return &MinIOClient{
		client: client,
		bucket: bucket,
	}, nil
}

// UploadImage stores an uploaded image and returns its public URL.
// Object names are randomized so two users uploading "avatar.png"
// never clobber each other.
func (m *MinIOClient) UploadImage(ctx context.Context, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer src.Close()

	objectName := fmt.Sprintf("images/%s%s", uuid.New().String(), path.Ext(file.Filename))
	_, err = m.client.PutObject(ctx, m.bucket, objectName, src, file.Size, minio.PutObjectOptions{
		ContentType: file.Header.Get("Content-Type"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	url := fmt.Sprintf("http://%s/%s/%s", m.client.EndpointURL().Host, m.bucket, objectName)
	return url, nil
}

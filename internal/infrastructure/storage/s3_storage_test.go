package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/eyedist/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewS3ObjectStorage_Validation(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		_, err := NewS3ObjectStorage(nil)
		assert.ErrorContains(t, err, "configuration is required")
	})

	t.Run("missing bucket", func(t *testing.T) {
		_, err := NewS3ObjectStorage(&config.StorageConfig{S3AccessKey: "k", S3SecretKey: "s"})
		assert.ErrorContains(t, err, "bucket is required")
	})

	t.Run("missing credentials", func(t *testing.T) {
		_, err := NewS3ObjectStorage(&config.StorageConfig{S3Bucket: "b"})
		assert.ErrorContains(t, err, "access key")
	})
}

func TestS3ObjectStorage_URL(t *testing.T) {
	s, err := NewS3ObjectStorage(&config.StorageConfig{
		S3Endpoint:  "localhost:9000",
		S3Bucket:    "eyedist",
		S3AccessKey: "minio",
		S3SecretKey: "minio123",
		S3PathStyle: true,
	}, WithPresignExpiration(5*time.Minute))
	require.NoError(t, err)

	url, err := s.URL(context.Background(), "uploads/products/frame.jpg")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://localhost:9000/eyedist/uploads/products/frame.jpg?"), url)
	assert.Contains(t, url, "X-Amz-Expires=300")

	_, err = s.URL(context.Background(), "../etc/passwd")
	assert.Error(t, err)
}

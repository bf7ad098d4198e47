package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/eyedist/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// S3ObjectStorage keeps uploads in an S3-compatible bucket (AWS, MinIO).
// Clients fetch files through short-lived presigned URLs.
type S3ObjectStorage struct {
	client            *s3.Client
	presignClient     *s3.PresignClient
	bucket            string
	presignExpiration time.Duration
	logger            *zap.Logger
}

type S3ObjectStorageOption func(*S3ObjectStorage)

func WithLogger(logger *zap.Logger) S3ObjectStorageOption {
	return func(s *S3ObjectStorage) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithPresignExpiration(d time.Duration) S3ObjectStorageOption {
	return func(s *S3ObjectStorage) {
		s.presignExpiration = d
	}
}

func NewS3ObjectStorage(cfg *config.StorageConfig, opts ...S3ObjectStorageOption) (*S3ObjectStorage, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	if cfg.S3Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	if cfg.S3AccessKey == "" || cfg.S3SecretKey == "" {
		return nil, errors.New("storage access key and secret key are required")
	}

	region := cfg.S3Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	var endpoint string
	if cfg.S3Endpoint != "" {
		endpoint = cfg.S3Endpoint
		if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
			endpoint = "https://" + endpoint
		}
		if _, err := url.Parse(endpoint); err != nil {
			return nil, fmt.Errorf("invalid storage endpoint: %w", err)
		}
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.S3PathStyle
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	s := &S3ObjectStorage{
		client:            client,
		presignClient:     s3.NewPresignClient(client),
		bucket:            cfg.S3Bucket,
		presignExpiration: 15 * time.Minute,
		logger:            zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// EnsureBucket creates the bucket when it does not exist yet
func (s *S3ObjectStorage) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		return nil
	}
	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	s.logger.Info("Creating storage bucket", zap.String("bucket", s.bucket))
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)})
	var owned *types.BucketAlreadyOwnedByYou
	if err != nil && !errors.As(err, &owned) {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

func (s *S3ObjectStorage) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	if err := validKey(key); err != nil {
		return err
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}
	return nil
}

func (s *S3ObjectStorage) Delete(ctx context.Context, key string) error {
	if err := validKey(key); err != nil {
		return err
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// URL presigns a GET for key
func (s *S3ObjectStorage) URL(ctx context.Context, key string) (string, error) {
	if err := validKey(key); err != nil {
		return "", err
	}
	req, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.presignExpiration))
	if err != nil {
		return "", fmt.Errorf("failed to presign download URL: %w", err)
	}
	return req.URL, nil
}

var _ ObjectStorage = (*S3ObjectStorage)(nil)

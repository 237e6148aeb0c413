// Package media stores uploaded images and videos in an S3-compatible
// bucket and describes images with a vision model.
package media

import (
	"bytes"
	"context"
	"fmt"

	mediaerrors "hms/internal/media/errors"
	"hms/pkg/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type ObjectStore interface {
	// Put stores data under key and returns its public URL.
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, key string) error
}

type S3Store struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewS3Store connects to AWS S3, or to any S3-compatible endpoint such as
// Cloudflare R2 when StorageEndpoint is set.
func NewS3Store(ctx context.Context, cfg *config.Config) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.StorageRegion),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.StorageAccessKey, cfg.StorageSecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.StorageEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.StorageEndpoint)
			o.UsePathStyle = true
		}
	})

	publicURL := cfg.StoragePublicURL
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.StorageBucket, cfg.StorageRegion)
	}

	return &S3Store{
		client:    client,
		bucket:    cfg.StorageBucket,
		publicURL: publicURL,
	}, nil
}

func (s *S3Store) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return s.publicURL + "/" + key, nil
}

func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// DisabledStore rejects every upload. It is used when no bucket is
// configured so the rest of the API still starts.
type DisabledStore struct{}

func (DisabledStore) Put(context.Context, string, string, []byte) (string, error) {
	return "", mediaerrors.ErrStorageDisabled
}

func (DisabledStore) Delete(context.Context, string) error {
	return mediaerrors.ErrStorageDisabled
}

func NewObjectStore(ctx context.Context, cfg *config.Config) (ObjectStore, error) {
	if !cfg.StorageEnabled() {
		cfg.Log.Warn("Object storage not configured, media uploads disabled")
		return DisabledStore{}, nil
	}
	return NewS3Store(ctx, cfg)
}

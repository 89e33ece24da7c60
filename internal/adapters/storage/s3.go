// internal/adapters/storage/s3.go
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/ammerola/procure-be/internal/core/ports"
)

// S3Config holds S3 configuration
type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	// Endpoint and UsePathStyle point the client at MinIO or LocalStack
	Endpoint     string
	UsePathStyle bool
	// KeyPrefix is prepended to every object key
	KeyPrefix string
	// CreateBucket creates the bucket on startup when it is missing
	CreateBucket bool
}

// S3Storage keeps purchase order documents in an S3 bucket. Objects are
// written with server side encryption and the original file name as metadata.
type S3Storage struct {
	client   *s3.Client
	uploader *manager.Uploader
	presign  *s3.PresignClient
	cfg      S3Config
	logger   *slog.Logger
}

var _ ports.FileStorage = (*S3Storage)(nil)

// NewS3Storage builds the client and checks that the bucket is reachable
func NewS3Storage(ctx context.Context, cfg *S3Config, logger *slog.Logger) (*S3Storage, error) {
	awsCfg, err := loadAWSConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build AWS config: %w", err)
	}

	s := newS3Storage(awsCfg, *cfg, logger)
	if err := s.verifyBucket(ctx); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "s3 storage ready", slog.String("region", cfg.Region))
	return s, nil
}

func newS3Storage(awsCfg aws.Config, cfg S3Config, logger *slog.Logger) *S3Storage {
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.EndpointResolver = s3.EndpointResolverFromURL(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return &S3Storage{
		client:   client,
		uploader: manager.NewUploader(client),
		presign:  s3.NewPresignClient(client),
		cfg:      cfg,
		logger:   logger.With(slog.String("storage", "s3"), slog.String("bucket", cfg.Bucket)),
	}
}

func loadAWSConfig(ctx context.Context, cfg *S3Config) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}
	return awsconfig.LoadDefaultConfig(ctx, opts...)
}

func (s *S3Storage) verifyBucket(ctx context.Context) error {
	err := s.Ping(ctx)
	if err == nil || !s.cfg.CreateBucket {
		return err
	}

	in := &s3.CreateBucketInput{Bucket: aws.String(s.cfg.Bucket)}
	// us-east-1 rejects an explicit location constraint
	if s.cfg.Region != "" && s.cfg.Region != "us-east-1" {
		in.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(s.cfg.Region),
		}
	}
	if _, createErr := s.client.CreateBucket(ctx, in); createErr != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.cfg.Bucket, errors.Join(err, createErr))
	}
	s.logger.InfoContext(ctx, "bucket created")
	return nil
}

// objectKey applies the configured prefix
func (s *S3Storage) objectKey(key string) string {
	if s.cfg.KeyPrefix == "" {
		return key
	}
	return path.Join(s.cfg.KeyPrefix, key)
}

// Upload stores data under key and returns the object location
func (s *S3Storage) Upload(ctx context.Context, key string, data io.Reader, contentType string) (string, error) {
	objKey := s.objectKey(key)
	out, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:               aws.String(s.cfg.Bucket),
		Key:                  aws.String(objKey),
		Body:                 data,
		ContentType:          aws.String(contentTypeFor(key, contentType)),
		ServerSideEncryption: types.ServerSideEncryptionAes256,
		Metadata: map[string]string{
			"file-name":   path.Base(key),
			"uploaded-at": time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", objKey, err)
	}

	s.logger.InfoContext(ctx, "object uploaded", slog.String("key", objKey))
	return out.Location, nil
}

// Delete removes the object stored under key. Deleting a missing object
// succeeds.
func (s *S3Storage) Delete(ctx context.Context, key string) error {
	objKey := s.objectKey(key)
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(objKey),
	}); err != nil {
		return fmt.Errorf("failed to delete %s: %w", objKey, err)
	}

	s.logger.InfoContext(ctx, "object deleted", slog.String("key", objKey))
	return nil
}

// GetPresignedURL returns a download URL for key valid for ttl
func (s *S3Storage) GetPresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket:                     aws.String(s.cfg.Bucket),
		Key:                        aws.String(s.objectKey(key)),
		ResponseContentDisposition: aws.String(fmt.Sprintf("attachment; filename=%q", path.Base(key))),
	}, func(o *s3.PresignOptions) {
		o.Expires = ttl
	})
	if err != nil {
		return "", fmt.Errorf("failed to presign %s: %w", key, err)
	}
	return req.URL, nil
}

// Exists reports whether an object is stored under key
func (s *S3Storage) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	var notFound *types.NotFound
	switch {
	case err == nil:
		return true, nil
	case errors.As(err, &notFound):
		return false, nil
	default:
		return false, fmt.Errorf("failed to stat %s: %w", key, err)
	}
}

// Ping checks that the bucket is reachable
func (s *S3Storage) Ping(ctx context.Context) error {
	if _, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.cfg.Bucket)}); err != nil {
		return fmt.Errorf("bucket %s unreachable: %w", s.cfg.Bucket, err)
	}
	return nil
}

// contentTypeFor trusts the declared type and falls back to the extension
func contentTypeFor(key, declared string) string {
	if declared = strings.TrimSpace(declared); declared != "" {
		return declared
	}
	if ct := mime.TypeByExtension(path.Ext(key)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

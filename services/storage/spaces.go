// Package storage keeps generated reports in S3-compatible object storage
// (DigitalOcean Spaces, AWS S3, MinIO).
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"github.com/sahilchouksey/career-compass-api/config"
)

// ErrNotConfigured is returned by FromEnv when no bucket is configured
var ErrNotConfigured = errors.New("report storage is not configured")

// SpacesConfig holds configuration for the storage client
type SpacesConfig struct {
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Endpoint  string // host without scheme, e.g. nyc3.digitaloceanspaces.com
	CDNURL    string
}

// SpacesClient handles object storage operations
type SpacesClient struct {
	s3Client *s3.S3
	bucket   string
	endpoint string
	cdnURL   string
}

// NewSpacesClient creates a new storage client
func NewSpacesClient(cfg SpacesConfig) (*SpacesClient, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, fmt.Errorf("bucket and region must be configured")
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = fmt.Sprintf("%s.digitaloceanspaces.com", cfg.Region)
	}

	sess, err := session.NewSession(&aws.Config{
		Credentials: credentials.NewStaticCredentials(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		),
		Endpoint:         aws.String(cfg.Endpoint),
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(false),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage session: %w", err)
	}

	return &SpacesClient{
		s3Client: s3.New(sess),
		bucket:   cfg.Bucket,
		endpoint: cfg.Endpoint,
		cdnURL:   strings.TrimRight(cfg.CDNURL, "/"),
	}, nil
}

// FromEnv builds the client from REPORTS_* settings. ErrNotConfigured means reports are
// streamed to the caller instead of stored.
func FromEnv() (*SpacesClient, error) {
	env, err := config.Get()
	if err != nil {
		return nil, err
	}
	if env.REPORTS_BUCKET == "" {
		return nil, ErrNotConfigured
	}
	if env.REPORTS_ACCESS_KEY == "" || env.REPORTS_SECRET_KEY == "" {
		return nil, fmt.Errorf("REPORTS_ACCESS_KEY and REPORTS_SECRET_KEY must be set with REPORTS_BUCKET")
	}
	return NewSpacesClient(SpacesConfig{
		AccessKey: env.REPORTS_ACCESS_KEY,
		SecretKey: env.REPORTS_SECRET_KEY,
		Bucket:    env.REPORTS_BUCKET,
		Region:    env.REPORTS_REGION,
		Endpoint:  env.REPORTS_ENDPOINT,
		CDNURL:    env.REPORTS_CDN_URL,
	})
}

// UploadBytes stores data privately under key and returns its permanent URL
func (s *SpacesClient) UploadBytes(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ACL:         aws.String("private"),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	return s.FileURL(key), nil
}

// Delete removes an object
func (s *SpacesClient) Delete(ctx context.Context, key string) error {
	_, err := s.s3Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// FileURL returns the permanent URL for a key
func (s *SpacesClient) FileURL(key string) string {
	if s.cdnURL != "" {
		return fmt.Sprintf("%s/%s", s.cdnURL, key)
	}
	return fmt.Sprintf("https://%s.%s/%s", s.bucket, s.endpoint, key)
}

// PresignedURL generates a presigned URL for temporary access
func (s *SpacesClient) PresignedURL(key string, expiration time.Duration) (string, error) {
	req, _ := s.s3Client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})

	url, err := req.Presign(expiration)
	if err != nil {
		return "", fmt.Errorf("failed to presign URL: %w", err)
	}
	return url, nil
}

// ReportKey returns a fresh object key for a user's report
func ReportKey(userID uint) string {
	return fmt.Sprintf("reports/%d/%s.pdf", userID, uuid.NewString())
}

// ContentType returns the content type for the report formats the service produces
func ContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return "application/pdf"
	case ".csv":
		return "text/csv"
	case ".json":
		return "application/json"
	default:
		return "application/octet-stream"
	}
}

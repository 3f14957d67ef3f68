package media

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// DefaultPresignExpiry is how long presigned image URLs stay valid when the
// bucket has no public URL. The resolver refreshes well inside this window.
const DefaultPresignExpiry = 24 * time.Hour

// R2Config holds the Cloudflare R2 connection settings.
type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicURL       string // Custom domain or r2.dev URL; empty means presign
	Region          string
	PresignExpiry   time.Duration
}

// =============================================================================
// R2Store Implementation
// =============================================================================

// headObjectAPI is the part of the S3 client R2Store needs for probing.
type headObjectAPI interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// R2Store reads site images from a Cloudflare R2 bucket.
// R2 is S3-compatible, so we use the AWS SDK v2 with a custom endpoint.
type R2Store struct {
	client        headObjectAPI
	presignClient *s3.PresignClient
	bucketName    string
	publicURL     string
	expiry        time.Duration
	logger        *slog.Logger
}

// NewR2Store creates an R2Store. The endpoint is built from the account ID.
func NewR2Store(cfg R2Config, logger *slog.Logger) (*R2Store, error) {
	if cfg.AccountID == "" || cfg.BucketName == "" {
		return nil, errors.New("r2: account id and bucket name are required")
	}

	region := cfg.Region
	if region == "" {
		region = "auto"
	}

	// Format: https://{account_id}.r2.cloudflarestorage.com
	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)

	creds := credentials.NewStaticCredentialsProvider(
		cfg.AccessKeyID,
		cfg.SecretAccessKey,
		"", // session token not needed for R2
	)

	awsCfg := aws.Config{
		Region:      region,
		Credentials: creds,
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	expiry := cfg.PresignExpiry
	if expiry <= 0 {
		expiry = DefaultPresignExpiry
	}

	logger.Info("initialized R2 media",
		"bucket", cfg.BucketName,
		"endpoint", endpoint,
		"public_url", cfg.PublicURL,
	)

	return &R2Store{
		client:        client,
		presignClient: s3.NewPresignClient(client),
		bucketName:    cfg.BucketName,
		publicURL:     strings.TrimSuffix(cfg.PublicURL, "/"),
		expiry:        expiry,
		logger:        logger,
	}, nil
}

// URL returns the public URL for object when one is configured, otherwise
// a presigned GET URL.
func (s *R2Store) URL(ctx context.Context, object string) (string, error) {
	if err := validateKey(object); err != nil {
		return "", &StoreError{Op: "URL", Key: object, Err: err}
	}

	if s.publicURL != "" {
		return fmt.Sprintf("%s/%s", s.publicURL, object), nil
	}

	request, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(object),
	}, s3.WithPresignExpires(s.expiry))
	if err != nil {
		return "", &StoreError{Op: "URL", Key: object, Err: fmt.Errorf("failed to generate presigned URL: %w", err)}
	}

	return request.URL, nil
}

// Exists checks the object with HeadObject.
func (s *R2Store) Exists(ctx context.Context, object string) (bool, error) {
	if err := validateKey(object); err != nil {
		return false, &StoreError{Op: "Exists", Key: object, Err: err}
	}

	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(object),
	})
	if err != nil {
		wrapped := wrapS3Error(err)
		if errors.Is(wrapped, ErrNotFound) {
			return false, nil
		}
		return false, &StoreError{Op: "Exists", Key: object, Err: wrapped}
	}

	return true, nil
}

// =============================================================================
// Internal Helpers
// =============================================================================

// validateKey rejects empty keys and keys with path traversal.
func validateKey(key string) error {
	if key == "" || strings.Contains(key, "..") {
		return ErrInvalidKey
	}
	return nil
}

// wrapS3Error converts S3 SDK errors to media errors.
func wrapS3Error(err error) error {
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return ErrNotFound
	}

	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return ErrNotFound
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey":
			return ErrNotFound
		case "AccessDenied", "Forbidden":
			return ErrAccessDenied
		}

		if httpErr, ok := err.(interface{ HTTPStatusCode() int }); ok {
			switch httpErr.HTTPStatusCode() {
			case http.StatusNotFound:
				return ErrNotFound
			case http.StatusForbidden:
				return ErrAccessDenied
			}
		}
	}

	return fmt.Errorf("R2 operation failed: %w", err)
}

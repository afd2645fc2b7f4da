package blob

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/xid"
)

// S3Config holds the settings for an S3-compatible bucket (AWS or MinIO —
// BaseEndpoint points at the MinIO server in the latter case).
type S3Config struct {
	Region       string
	BaseEndpoint string
	Bucket       string
	AccessKey    string
	SecretKey    string
}

// s3API is the slice of the S3 client Save uses; tests stub it.
type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store uploads blobs to a bucket. Objects get date-partitioned keys so a
// bucket listing groups uploads by day.
type S3Store struct {
	client  s3API
	bucket  string
	baseURL string
}

var _ Store = (*S3Store)(nil)

// NewS3Store builds an S3 client from static credentials and a custom base
// endpoint.
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("blob: loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
		}
		o.UsePathStyle = true
	})

	return &S3Store{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: fmt.Sprintf("%s/%s", cfg.BaseEndpoint, cfg.Bucket),
	}, nil
}

// Save puts the blob under uploads/YYYY/M/D/<xid><ext> and returns its URL.
func (s *S3Store) Save(ctx context.Context, ext, contentType string, r io.Reader) (string, error) {
	now := time.Now()
	key := fmt.Sprintf("uploads/%d/%d/%d/%s%s",
		now.Year(), now.Month(), now.Day(), xid.New().String(), ext)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("blob: putting object %s: %w", key, err)
	}

	return s.baseURL + "/" + key, nil
}

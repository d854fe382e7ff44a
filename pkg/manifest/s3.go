package manifest

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// DefaultS3Region is used when S3Config.Region is empty.
const DefaultS3Region = "us-east-1"

// S3Config configures an S3-compatible artifact source.
type S3Config struct {
	// Bucket holding the build artifacts (required).
	Bucket string `env:"REACTSSR_S3_BUCKET"`

	// Prefix is prepended to every artifact name, e.g. "builds/v42".
	Prefix string `env:"REACTSSR_S3_PREFIX"`

	// Region is the AWS region (default: us-east-1).
	Region string `env:"REACTSSR_S3_REGION" envDefault:"us-east-1"`

	// Endpoint is a custom endpoint for MinIO and other S3-compatible services.
	Endpoint string `env:"REACTSSR_S3_ENDPOINT"`

	// AccessKey and SecretKey are static credentials (required).
	AccessKey string `env:"REACTSSR_S3_ACCESS_KEY"`
	SecretKey string `env:"REACTSSR_S3_SECRET_KEY"`

	// PathStyle enables path-style addressing (required for MinIO).
	PathStyle bool `env:"REACTSSR_S3_PATH_STYLE"`
}

func (c *S3Config) validate() error {
	if c.Bucket == "" {
		return fmt.Errorf("%w: s3 bucket is required", ErrInvalidConfig)
	}
	if c.AccessKey == "" || c.SecretKey == "" {
		return fmt.Errorf("%w: s3 credentials are required", ErrInvalidConfig)
	}
	return nil
}

// S3Source reads artifacts from an S3-compatible bucket.
type S3Source struct {
	client *s3.Client
	cfg    S3Config
}

// NewS3Source creates a source for the configured bucket.
// No request is made until Open or Check is called.
func NewS3Source(cfg S3Config) (*S3Source, error) {
	if cfg.Region == "" {
		cfg.Region = DefaultS3Region
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	opts := []func(*s3.Options){
		func(o *s3.Options) {
			o.Region = cfg.Region
			o.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
		},
	}
	if cfg.Endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.PathStyle
		})
	}

	return &S3Source{
		client: s3.New(s3.Options{}, opts...),
		cfg:    cfg,
	}, nil
}

// Open implements Source.
func (s *S3Source) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(s.Key(name)),
	})
	if err != nil {
		return nil, wrapS3Error(err)
	}
	return out.Body, nil
}

// Check reports whether the bucket is reachable.
// It matches the health.CheckFunc signature.
func (s *S3Source) Check(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.cfg.Bucket),
	})
	if err != nil {
		return wrapS3Error(err)
	}
	return nil
}

// Key returns the object key for an artifact name.
func (s *S3Source) Key(name string) string {
	name = strings.TrimPrefix(name, "/")
	prefix := strings.Trim(s.cfg.Prefix, "/")
	if prefix == "" {
		return path.Clean(name)
	}
	return path.Join(prefix, name)
}

// Ensure S3Source implements Source.
var _ Source = (*S3Source)(nil)

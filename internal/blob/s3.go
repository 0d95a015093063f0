package blob

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// s3API is the subset of the S3 client used by S3Store.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store implements Store on an S3 (or S3-compatible) bucket. Each
// payload becomes an object with a uuid key under an optional prefix;
// the locator is "s3://<bucket>/<key>". S3 writes are atomic per
// object, so no temp-and-rename dance is needed.
type S3Store struct {
	client    s3API
	bucket    string
	keyPrefix string
}

// S3Config carries the settings needed to reach the bucket. Endpoint
// and static credentials are optional and exist for S3-compatible
// storage; with both empty, the SDK's default chain applies.
type S3Config struct {
	Bucket    string
	Region    string
	KeyPrefix string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// NewS3Store builds an S3-backed store from cfg. The bucket must
// already exist.
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{
		client:    client,
		bucket:    cfg.Bucket,
		keyPrefix: cfg.KeyPrefix,
	}, nil
}

// Save uploads data under a fresh uuid key and returns its locator.
func (s *S3Store) Save(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	key := path.Join(s.keyPrefix, uuid.NewString())
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return "", fmt.Errorf("%w: put object: %v", ErrStorageUnavailable, err)
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}

package feed

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"cudays/internal/config"
	"cudays/internal/schedule"
)

// S3Feed reads a snapshot document from an S3 object. This serves the
// static-hosting deployment: the backend publishes one JSON document per
// program, clients poll it. The same version short-circuit as FileFeed
// applies.
type S3Feed struct {
	client *s3.Client
	bucket string
	key    string
}

var _ schedule.Feed = (*S3Feed)(nil)

// NewS3Feed creates an S3 feed from configuration. When an access key is
// configured it is used as a static credential, otherwise the default AWS
// credential chain applies.
func NewS3Feed(ctx context.Context, cfg config.FeedConfig) (*S3Feed, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
	}
	if cfg.S3AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return &S3Feed{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.S3Bucket,
		key:    cfg.S3Key,
	}, nil
}

// Updates fetches and decodes the document object.
func (f *S3Feed) Updates(ctx context.Context, sinceVersion int64) (*schedule.Delta, error) {
	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.key),
	})
	if err != nil {
		return nil, fmt.Errorf("fetching s3://%s/%s: %w", f.bucket, f.key, err)
	}
	defer out.Body.Close()

	delta, err := DecodeDelta(out.Body)
	if err != nil {
		return nil, err
	}

	if delta.Version <= sinceVersion {
		return &schedule.Delta{Version: delta.Version}, nil
	}
	return delta, nil
}

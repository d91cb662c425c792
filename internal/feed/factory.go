package feed

import (
	"context"
	"fmt"
	"time"

	"cudays/internal/config"
	"cudays/internal/schedule"
)

// NewFeedFromConfig creates a Feed implementation based on the feed config
// type.
func NewFeedFromConfig(ctx context.Context, cfg config.FeedConfig) (schedule.Feed, error) {
	switch cfg.Type {
	case "http":
		if cfg.URL == "" {
			return nil, fmt.Errorf("http feed requires url to be set")
		}
		timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		return NewHTTPFeed(cfg.URL, timeout), nil
	case "s3":
		if cfg.S3Bucket == "" || cfg.S3Key == "" {
			return nil, fmt.Errorf("s3 feed requires s3_bucket and s3_key to be set")
		}
		return NewS3Feed(ctx, cfg)
	case "file":
		if cfg.Path == "" {
			return nil, fmt.Errorf("file feed requires path to be set")
		}
		return NewFileFeed(cfg.Path), nil
	case "memory":
		return NewMemoryFeed(), nil
	default:
		return nil, fmt.Errorf("unknown feed type: %s", cfg.Type)
	}
}

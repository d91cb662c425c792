package feed_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"cudays/internal/config"
	"cudays/internal/feed"
)

func configWithType(feedType string) config.FeedConfig {
	return config.FeedConfig{Type: feedType}
}

func writeDocument(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "feed.json")
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("writing feed document: %v", err)
	}
	return path
}

func TestFileFeed_Updates(t *testing.T) {
	t.Run("serves the document when it is newer", func(t *testing.T) {
		f := feed.NewFileFeed(writeDocument(t, sampleDocument))

		delta, err := f.Updates(context.Background(), 0)
		if err != nil {
			t.Fatalf("Updates() error = %v", err)
		}
		if delta.Version != 42 || len(delta.ChangedEvents) != 1 {
			t.Errorf("delta = %+v, want version 42 with one event", delta)
		}
	})

	t.Run("already-seen version yields an empty delta", func(t *testing.T) {
		f := feed.NewFileFeed(writeDocument(t, sampleDocument))

		delta, err := f.Updates(context.Background(), 42)
		if err != nil {
			t.Fatalf("Updates() error = %v", err)
		}
		if delta.Version != 42 {
			t.Errorf("delta version = %d, want 42", delta.Version)
		}
		if len(delta.ChangedEvents) != 0 || len(delta.ChangedCategories) != 0 {
			t.Errorf("delta = %+v, want empty", delta)
		}
	})

	t.Run("missing file is an error", func(t *testing.T) {
		f := feed.NewFileFeed(filepath.Join(t.TempDir(), "absent.json"))
		if _, err := f.Updates(context.Background(), 0); err == nil {
			t.Error("Updates() error = nil, want open failure")
		}
	})
}

func TestNewFeedFromConfig(t *testing.T) {
	// Covered per-type: unknown and under-specified configs must fail fast.
	tests := []struct {
		name    string
		cfgType string
	}{
		{"unknown type", "carrier-pigeon"},
		{"http without url", "http"},
		{"s3 without bucket", "s3"},
		{"file without path", "file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := feed.NewFeedFromConfig(context.Background(), configWithType(tt.cfgType))
			if err == nil {
				t.Errorf("NewFeedFromConfig(%q) error = nil, want validation failure", tt.cfgType)
			}
		})
	}
}

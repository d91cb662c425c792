package feed

import (
	"context"
	"fmt"
	"os"

	"cudays/internal/schedule"
)

// FileFeed reads a snapshot document from a local file. Useful for
// development and for air-gapped runs. The document carries its own
// version; when that version is not newer than sinceVersion the feed
// reports an empty delta so the round is a cheap no-op.
type FileFeed struct {
	path string
}

var _ schedule.Feed = (*FileFeed)(nil)

// NewFileFeed creates a feed reading the document at path.
func NewFileFeed(path string) *FileFeed {
	return &FileFeed{path: path}
}

// Updates reads and decodes the document.
func (f *FileFeed) Updates(ctx context.Context, sinceVersion int64) (*schedule.Delta, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("opening feed document: %w", err)
	}
	defer file.Close()

	delta, err := DecodeDelta(file)
	if err != nil {
		return nil, err
	}

	if delta.Version <= sinceVersion {
		return &schedule.Delta{Version: delta.Version}, nil
	}
	return delta, nil
}

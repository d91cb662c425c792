package feed

import (
	"context"
	"sync"

	"cudays/internal/schedule"
)

// MemoryFeed is an in-process feed fed by tests (or an offline run, where
// it simply reports nothing new). Queued deltas are served one per Updates
// call; when the queue is empty the feed reports an empty delta at the
// last served version. Safe for concurrent use.
type MemoryFeed struct {
	mu      sync.Mutex
	queue   []*schedule.Delta
	errs    []error
	version int64

	// Calls records the sinceVersion of every Updates call, in order.
	Calls []int64
}

var _ schedule.Feed = (*MemoryFeed)(nil)

// NewMemoryFeed creates an empty memory feed.
func NewMemoryFeed() *MemoryFeed {
	return &MemoryFeed{}
}

// Push queues a delta to be served by a later Updates call.
func (f *MemoryFeed) Push(d *schedule.Delta) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue = append(f.queue, d)
	f.errs = append(f.errs, nil)
}

// PushError queues a failure to be served by a later Updates call.
func (f *MemoryFeed) PushError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue = append(f.queue, nil)
	f.errs = append(f.errs, err)
}

// Updates serves the next queued delta or error.
func (f *MemoryFeed) Updates(ctx context.Context, sinceVersion int64) (*schedule.Delta, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.Calls = append(f.Calls, sinceVersion)

	if len(f.queue) == 0 {
		if f.version < sinceVersion {
			f.version = sinceVersion
		}
		return &schedule.Delta{Version: f.version}, nil
	}

	d, err := f.queue[0], f.errs[0]
	f.queue = f.queue[1:]
	f.errs = f.errs[1:]
	if err != nil {
		return nil, err
	}
	f.version = d.Version
	return d, nil
}

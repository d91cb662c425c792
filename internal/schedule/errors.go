package schedule

import "errors"

// ErrNotFound is returned when an operation names an identity that is not
// currently loaded, e.g. selecting an event that is not in the cache.
var ErrNotFound = errors.New("not found")

// ErrSyncInProgress is returned when a sync round is requested while another
// round is still outstanding. The request is rejected, not queued: at most
// one delta may be applied against the indexes at a time.
var ErrSyncInProgress = errors.New("sync already in progress")

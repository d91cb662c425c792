package schedule

import (
	"context"

	"cudays/internal/model"
)

// Delta is one batch of remote changes since a previously acknowledged
// version. Applying a delta is the unit of synchronization; applying the
// same delta twice yields the same cache contents as applying it once.
type Delta struct {
	Version            int64
	ChangedCategories  []model.Category
	DeletedCategoryPks []int
	ChangedEvents      []model.Event
	DeletedEventPks    []int
}

// Feed is the remote versioned source of events and categories. Updates
// returns everything that changed since sinceVersion. The transport behind
// it is not this layer's concern; a failed or never-completing fetch must
// simply surface as an error (or a blocked call bounded by ctx) without the
// cache having been touched.
type Feed interface {
	Updates(ctx context.Context, sinceVersion int64) (*Delta, error)
}

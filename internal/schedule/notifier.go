package schedule

import "cudays/internal/model"

// Notifier is the local-reminder collaborator. All calls are fire-and-forget;
// the sync layer never consumes a result. Cancel-then-reschedule semantics
// for updated events are owned by the implementation.
type Notifier interface {
	// Cancel drops any pending reminder for the identity.
	Cancel(pk int)

	// Schedule arranges a reminder for the event.
	Schedule(e model.Event)

	// BatchChanged tells the user which of their selected events changed
	// in a sync round.
	BatchChanged(events []model.Event)
}

// NopNotifier discards all notification requests. Use in tests.
type NopNotifier struct{}

func (NopNotifier) Cancel(int)                  {}
func (NopNotifier) Schedule(model.Event)        {}
func (NopNotifier) BatchChanged([]model.Event) {}

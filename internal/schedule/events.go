package schedule

import (
	"fmt"

	"cudays/internal/model"
)

// EventStore holds all known events plus the selection overlay (the events
// the user has chosen to attend) as two indexes over the same fixed day
// buckets. The overlay is always a subset of the all-events index by
// identity, anchored under the same day bucket.
type EventStore struct {
	all      *Index[model.Event]
	selected *Index[model.Event]
	order    EventOrder
}

// NewEventStore creates an event store with one bucket per program day.
func NewEventStore(days []model.Day, order EventOrder, logger Logger) *EventStore {
	return &EventStore{
		all:      NewIndex[model.Event](days, logger),
		selected: NewIndex[model.Event](days, logger),
		order:    order,
	}
}

// Days returns the fixed program days in configuration order.
func (s *EventStore) Days() []model.Day {
	return s.all.Days()
}

// Upsert inserts or replaces the event in the all-events index. If the
// identity was selected before this upsert, the stale overlay entry is
// replaced with the new value too, so a selection survives the event moving
// to a different day. Returns false if the event's day is not a program day.
func (s *EventStore) Upsert(e model.Event) bool {
	wasSelected := s.selected.Contains(e.Pk)
	if !s.all.Upsert(e) {
		return false
	}
	if wasSelected {
		s.selected.Upsert(e)
	}
	return true
}

// Remove deletes the identity from both indexes. Removing an absent
// identity is a no-op.
func (s *EventStore) Remove(pk int) {
	s.all.Remove(pk)
	s.selected.Remove(pk)
}

// Select adds the currently loaded event with the given identity to the
// selection overlay. Selecting an identity that is not loaded fails with
// ErrNotFound.
func (s *EventStore) Select(pk int) error {
	e, ok := s.all.Get(pk)
	if !ok {
		return fmt.Errorf("selecting event %d: %w", pk, ErrNotFound)
	}
	s.selected.Upsert(e)
	return nil
}

// Deselect removes the identity from the selection overlay only.
func (s *EventStore) Deselect(pk int) {
	s.selected.Remove(pk)
}

// IsKnown reports whether the identity is in the all-events index.
func (s *EventStore) IsKnown(pk int) bool {
	return s.all.Contains(pk)
}

// IsSelected reports whether the identity is in the selection overlay.
func (s *EventStore) IsSelected(pk int) bool {
	return s.selected.Contains(pk)
}

// Get returns the loaded event with the given identity.
func (s *EventStore) Get(pk int) (model.Event, bool) {
	return s.all.Get(pk)
}

// SortedForDay returns all events of the given day in display order.
func (s *EventStore) SortedForDay(day model.Day) []model.Event {
	return s.all.Sorted(day, s.order.Less)
}

// SelectedForDay returns the selected events of the given day in display order.
func (s *EventStore) SelectedForDay(day model.Day) []model.Event {
	return s.selected.Sorted(day, s.order.Less)
}

// SelectedIDs returns the identities of all selected events. This feeds the
// persisted selection list.
func (s *EventStore) SelectedIDs() []int {
	return s.selected.IDs()
}

// All returns every loaded event, in no particular order.
func (s *EventStore) All() []model.Event {
	return s.all.All()
}

// Len returns the number of loaded events.
func (s *EventStore) Len() int {
	return s.all.Len()
}

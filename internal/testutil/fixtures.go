package testutil

import (
	"sync"

	"cudays/internal/model"
)

// ProgramDays returns the standard three-day program used across tests.
func ProgramDays() []model.Day {
	return []model.Day{
		{Year: 2018, Month: 4, Day: 12},
		{Year: 2018, Month: 4, Day: 13},
		{Year: 2018, Month: 4, Day: 16},
	}
}

// NewEvent builds a plausible event on the first program day. Override
// fields on the returned value as needed.
func NewEvent(pk int) model.Event {
	return model.Event{
		Pk:              pk,
		Title:           "Campus Tour",
		Caption:         "Bartels Hall",
		Description:     "A walking tour of central campus.",
		CollegeCategory: 1,
		TypeCategory:    10,
		StartTime:       model.Time{Hour: 10, Minute: 0},
		EndTime:         model.Time{Hour: 11, Minute: 30},
		Date:            model.Day{Year: 2018, Month: 4, Day: 12},
		PlaceID:         "place-1",
		ImagePk:         3,
	}
}

// NewCategory builds a college category. Flip IsCollege for a type
// category.
func NewCategory(pk int) model.Category {
	return model.Category{
		Pk:          pk,
		Name:        "Engineering",
		Description: "College of Engineering",
		IsCollege:   true,
	}
}

// RecordingNotifier captures every notifier call for assertions.
// Safe for concurrent use.
type RecordingNotifier struct {
	mu        sync.Mutex
	Cancelled []int
	Scheduled []model.Event
	Batches   [][]model.Event
}

func NewRecordingNotifier() *RecordingNotifier {
	return &RecordingNotifier{}
}

func (n *RecordingNotifier) Cancel(pk int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Cancelled = append(n.Cancelled, pk)
}

func (n *RecordingNotifier) Schedule(e model.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Scheduled = append(n.Scheduled, e)
}

func (n *RecordingNotifier) BatchChanged(events []model.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Batches = append(n.Batches, append([]model.Event(nil), events...))
}

package schedule

import "cudays/internal/model"

// EventOrder is the display ordering for events. Events group by calendar
// day first. Within a day, events order by start time, except that an event
// starting at or before EndHour (technically past midnight) belongs to the
// previous day's late session and sorts after everything that starts at or
// after StartHour on the same nominal day.
//
// Both boundaries are owned by the display configuration, not hardcoded
// here. StartHour is the earliest hour a same-day event starts; EndHour is
// the latest hour a previous-night event runs into. EndHour must be smaller
// than StartHour.
type EventOrder struct {
	StartHour int
	EndHour   int
}

// Less reports whether a sorts before b. Comparison is by normalized start
// key, so the order is a strict weak ordering: no pairwise rule can produce
// a cycle.
func (o EventOrder) Less(a, b model.Event) bool {
	if a.Date != b.Date {
		return a.Date.Before(b.Date)
	}
	return o.sortKey(a.StartTime) < o.sortKey(b.StartTime)
}

// sortKey maps a start time to minutes after the nominal day's midnight,
// shifting late-night starts past the whole day so they sort last.
func (o EventOrder) sortKey(t model.Time) int {
	key := t.Minutes()
	if t.Hour <= o.EndHour {
		key += 24 * 60
	}
	return key
}

// CategoryLess orders categories by name, case-sensitive.
func CategoryLess(a, b model.Category) bool {
	return a.Name < b.Name
}

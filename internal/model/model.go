package model

import (
	"fmt"
	"time"
)

// Time is a wall-clock time of day with minute precision.
type Time struct {
	Hour   int // 0-23
	Minute int // 0-59
}

// Minutes returns the time as minutes after midnight.
func (t Time) Minutes() int {
	return t.Hour*60 + t.Minute
}

// Before reports whether t is earlier in the day than other.
func (t Time) Before(other Time) bool {
	return t.Minutes() < other.Minutes()
}

// Valid reports whether the hour and minute are in range.
func (t Time) Valid() bool {
	return t.Hour >= 0 && t.Hour <= 23 && t.Minute >= 0 && t.Minute <= 59
}

func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Day is a calendar day. It is stored as three separate integers rather than
// a timestamp so that reloading records is immune to timezone shifts.
type Day struct {
	Year  int
	Month int // 1-12
	Day   int // 1-31
}

// Before reports whether d is an earlier calendar day than other.
func (d Day) Before(other Day) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// At returns the instant at the given time of day in loc.
func (d Day) At(t Time, loc *time.Location) time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, t.Hour, t.Minute, 0, 0, loc)
}

func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Event holds all information about one scheduled event. Events are immutable
// values: they are created from persisted records at startup or from a remote
// delta during sync, never constructed ad hoc by display code. Two events are
// the same event iff their Pk values match; every other field may change
// between sync rounds, including Date.
//
// Since an event can cross midnight, EndTime may be numerically earlier than
// StartTime. Nothing may assume EndTime >= StartTime.
type Event struct {
	Pk              int    // unique positive identity assigned by the remote source
	Title           string
	Caption         string // short location label, e.g. "Bartels Hall"
	Description     string
	Additional      string // extra display text, e.g. a course listing
	CollegeCategory int    // Category.Pk of the college this event belongs to
	TypeCategory    int    // Category.Pk of the event type
	StartTime       Time
	EndTime         Time
	Date            Day    // the day the event begins
	PlaceID         string // opaque location reference for the map layer
	Full            bool   // whether the event has reached capacity
	ImagePk         int    // identity of the linked image
}

// ID returns the event's identity.
func (e Event) ID() int { return e.Pk }

// DayKey returns the day bucket the event belongs to.
func (e Event) DayKey() Day { return e.Date }

// Same reports whether two events are the same event (identity equality).
// Use == for full value equality.
func (e Event) Same(other Event) bool { return e.Pk == other.Pk }

// Category is the college or event-type grouping an Event belongs to.
// IsCollege partitions categories into exactly two disjoint kinds.
type Category struct {
	Pk          int
	Name        string
	Description string
	IsCollege   bool
}

// ID returns the category's identity.
func (c Category) ID() int { return c.Pk }

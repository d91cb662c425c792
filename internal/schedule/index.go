package schedule

import (
	"sort"

	"cudays/internal/model"
)

// Entity is anything stored in an Index: a value with a stable integer
// identity and a calendar-day bucket key.
type Entity interface {
	ID() int
	DayKey() model.Day
}

// Index is a two-level index: day bucket -> identity -> entity. The bucket
// set is fixed at construction (one bucket per program day) and never
// changes. Identity, not day key, is authoritative: an entity's day may
// change between sync rounds, and Upsert relocates it rather than leaving a
// stale copy behind.
type Index[E Entity] struct {
	days    []model.Day
	buckets map[model.Day]map[int]E
	logger  Logger
}

// NewIndex creates an index with one empty bucket per day.
func NewIndex[E Entity](days []model.Day, logger Logger) *Index[E] {
	buckets := make(map[model.Day]map[int]E, len(days))
	for _, d := range days {
		buckets[d] = make(map[int]E)
	}
	return &Index[E]{
		days:    append([]model.Day(nil), days...),
		buckets: buckets,
		logger:  logger,
	}
}

// Days returns the fixed bucket set in configuration order.
func (x *Index[E]) Days() []model.Day {
	return append([]model.Day(nil), x.days...)
}

// Upsert inserts the entity into the bucket for its current day key,
// removing any copy stored under the same identity in any other bucket
// first. An entity whose day key is not a known bucket is rejected and
// logged; the index is left unchanged.
//
// Removing by identity scan rather than by the old day+id pair is what
// keeps the index consistent when an entity's day changes between two sync
// rounds: a day-keyed delete would miss the old copy and leave a duplicate.
func (x *Index[E]) Upsert(e E) bool {
	bucket, ok := x.buckets[e.DayKey()]
	if !ok {
		x.logger.Warn("entity day outside program, rejected", "pk", e.ID(), "day", e.DayKey().String())
		return false
	}
	x.Remove(e.ID())
	bucket[e.ID()] = e
	return true
}

// Remove scans all buckets and removes the entity with the given identity.
// Returns whether anything was removed. Removing an absent identity is a
// no-op.
func (x *Index[E]) Remove(pk int) bool {
	for _, bucket := range x.buckets {
		if _, ok := bucket[pk]; ok {
			delete(bucket, pk)
			return true
		}
	}
	return false
}

// Get returns the entity with the given identity, scanning all buckets.
func (x *Index[E]) Get(pk int) (E, bool) {
	for _, bucket := range x.buckets {
		if e, ok := bucket[pk]; ok {
			return e, true
		}
	}
	var zero E
	return zero, false
}

// Contains reports whether any bucket holds the given identity.
func (x *Index[E]) Contains(pk int) bool {
	_, ok := x.Get(pk)
	return ok
}

// Sorted returns the entities of the given day's bucket ordered by less.
// A day with no entries (or an unknown day) yields an empty slice.
func (x *Index[E]) Sorted(day model.Day, less func(a, b E) bool) []E {
	bucket := x.buckets[day]
	out := make([]E, 0, len(bucket))
	for _, e := range bucket {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// IDs returns the identities held across all buckets, in no particular order.
func (x *Index[E]) IDs() []int {
	var out []int
	for _, bucket := range x.buckets {
		for pk := range bucket {
			out = append(out, pk)
		}
	}
	return out
}

// All returns every entity across all buckets, in no particular order.
func (x *Index[E]) All() []E {
	var out []E
	for _, bucket := range x.buckets {
		for _, e := range bucket {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the total number of entities across all buckets.
func (x *Index[E]) Len() int {
	n := 0
	for _, bucket := range x.buckets {
		n += len(bucket)
	}
	return n
}

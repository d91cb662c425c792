package schedule

import (
	"sort"

	"cudays/internal/model"
)

// CategoryStore holds categories in two flat partitions keyed by identity,
// one per IsCollege value.
//
// Known edge case, kept for parity with the original data layer: if a
// category's IsCollege flag flips between two sync rounds, Upsert routes the
// new value by the new flag and the stale entry in the other partition is
// not cleaned up. Callers that need the flip handled must Remove first.
type CategoryStore struct {
	colleges map[int]model.Category
	types    map[int]model.Category
}

// NewCategoryStore creates an empty category store.
func NewCategoryStore() *CategoryStore {
	return &CategoryStore{
		colleges: make(map[int]model.Category),
		types:    make(map[int]model.Category),
	}
}

// Upsert inserts or replaces the category in the partition selected by its
// IsCollege flag.
func (s *CategoryStore) Upsert(c model.Category) {
	if c.IsCollege {
		s.colleges[c.Pk] = c
	} else {
		s.types[c.Pk] = c
	}
}

// Remove deletes the identity from whichever partitions hold it.
// Returns whether anything was removed.
func (s *CategoryStore) Remove(pk int) bool {
	_, inColleges := s.colleges[pk]
	_, inTypes := s.types[pk]
	delete(s.colleges, pk)
	delete(s.types, pk)
	return inColleges || inTypes
}

// Get returns the category with the given identity from either partition.
func (s *CategoryStore) Get(pk int) (model.Category, bool) {
	if c, ok := s.colleges[pk]; ok {
		return c, true
	}
	if c, ok := s.types[pk]; ok {
		return c, true
	}
	return model.Category{}, false
}

// SortedColleges returns the college partition ordered by name.
func (s *CategoryStore) SortedColleges() []model.Category {
	return sortedCategories(s.colleges)
}

// SortedTypes returns the type partition ordered by name.
func (s *CategoryStore) SortedTypes() []model.Category {
	return sortedCategories(s.types)
}

// All returns every category across both partitions, in no particular order.
func (s *CategoryStore) All() []model.Category {
	out := make([]model.Category, 0, len(s.colleges)+len(s.types))
	for _, c := range s.colleges {
		out = append(out, c)
	}
	for _, c := range s.types {
		out = append(out, c)
	}
	return out
}

// Len returns the total number of entries across both partitions.
func (s *CategoryStore) Len() int {
	return len(s.colleges) + len(s.types)
}

func sortedCategories(m map[int]model.Category) []model.Category {
	out := make([]model.Category, 0, len(m))
	for _, c := range m {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return CategoryLess(out[i], out[j]) })
	return out
}

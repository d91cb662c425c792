package schedule_test

import (
	"testing"

	"cudays/internal/model"
	"cudays/internal/schedule"
)

func TestCategoryStore_Upsert(t *testing.T) {
	t.Run("routes by the IsCollege flag", func(t *testing.T) {
		s := schedule.NewCategoryStore()
		s.Upsert(model.Category{Pk: 1, Name: "Engineering", IsCollege: true})
		s.Upsert(model.Category{Pk: 2, Name: "Tour", IsCollege: false})

		if got := len(s.SortedColleges()); got != 1 {
			t.Errorf("colleges = %d, want 1", got)
		}
		if got := len(s.SortedTypes()); got != 1 {
			t.Errorf("types = %d, want 1", got)
		}
	})

	t.Run("replaces the value under the same identity", func(t *testing.T) {
		s := schedule.NewCategoryStore()
		s.Upsert(model.Category{Pk: 1, Name: "Engineering", IsCollege: true})
		s.Upsert(model.Category{Pk: 1, Name: "College of Engineering", IsCollege: true})

		got, _ := s.Get(1)
		if got.Name != "College of Engineering" {
			t.Errorf("Name = %q, want %q", got.Name, "College of Engineering")
		}
		if s.Len() != 1 {
			t.Errorf("Len() = %d, want 1", s.Len())
		}
	})

	// Documented behavior, not an endorsement: a flag flip leaves the stale
	// entry behind in the other partition until it is removed explicitly.
	t.Run("flag flip leaves the old partition entry behind", func(t *testing.T) {
		s := schedule.NewCategoryStore()
		s.Upsert(model.Category{Pk: 1, Name: "Engineering", IsCollege: true})
		s.Upsert(model.Category{Pk: 1, Name: "Engineering", IsCollege: false})

		if s.Len() != 2 {
			t.Errorf("Len() = %d after a flag flip, want 2 (stale entry kept)", s.Len())
		}
		if got := len(s.SortedColleges()); got != 1 {
			t.Errorf("colleges = %d, want 1 (stale)", got)
		}
		if got := len(s.SortedTypes()); got != 1 {
			t.Errorf("types = %d, want 1", got)
		}
	})
}

func TestCategoryStore_Remove(t *testing.T) {
	s := schedule.NewCategoryStore()
	s.Upsert(model.Category{Pk: 1, Name: "Engineering", IsCollege: true})
	s.Upsert(model.Category{Pk: 1, Name: "Engineering", IsCollege: false})

	if ok := s.Remove(1); !ok {
		t.Error("Remove(1) = false, want true")
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d after remove, want 0 (both partitions cleared)", s.Len())
	}
	if ok := s.Remove(1); ok {
		t.Error("second Remove(1) = true, want false")
	}
}

func TestCategoryStore_Sorted(t *testing.T) {
	s := schedule.NewCategoryStore()
	s.Upsert(model.Category{Pk: 3, Name: "Engineering", IsCollege: true})
	s.Upsert(model.Category{Pk: 1, Name: "Arts and Sciences", IsCollege: true})
	s.Upsert(model.Category{Pk: 2, Name: "Human Ecology", IsCollege: true})

	got := s.SortedColleges()
	want := []string{"Arts and Sciences", "Engineering", "Human Ecology"}
	if len(got) != len(want) {
		t.Fatalf("SortedColleges() returned %d entries, want %d", len(got), len(want))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("SortedColleges()[%d].Name = %q, want %q", i, got[i].Name, name)
		}
	}
}

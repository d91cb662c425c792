package record_test

import (
	"errors"
	"strings"
	"testing"

	"cudays/internal/model"
	"cudays/internal/record"
)

func TestEventCodec(t *testing.T) {
	e := model.Event{
		Pk:              1201,
		Title:           "Dorm Move-In",
		Caption:         "North Campus",
		Description:     "Bring your keycard.",
		Additional:      "Residential staff available until 22:00",
		CollegeCategory: 3,
		TypeCategory:    14,
		StartTime:       model.Time{Hour: 23, Minute: 30},
		EndTime:         model.Time{Hour: 1, Minute: 0},
		Date:            model.Day{Year: 2018, Month: 4, Day: 12},
		PlaceID:         "ChIJndqRYRqC0IkR9J8bgk3mDvU",
		Full:            true,
		ImagePk:         12,
	}

	t.Run("round trips", func(t *testing.T) {
		got, err := record.DecodeEvent(record.EncodeEvent(e))
		if err != nil {
			t.Fatalf("DecodeEvent() error = %v", err)
		}
		if got != e {
			t.Errorf("round trip = %+v, want %+v", got, e)
		}
	})

	t.Run("keeps the historical field order", func(t *testing.T) {
		line := record.EncodeEvent(e)
		want := "Dorm Move-In|North Campus|Bring your keycard.|1201|23|30|1|0|true|2018|4|12|3|14|ChIJndqRYRqC0IkR9J8bgk3mDvU|12|Residential staff available until 22:00"
		if line != want {
			t.Errorf("EncodeEvent() = %q, want %q", line, want)
		}
	})

	t.Run("end before start is legal", func(t *testing.T) {
		// Midnight crossers encode EndTime numerically before StartTime.
		got, err := record.DecodeEvent(record.EncodeEvent(e))
		if err != nil {
			t.Fatalf("DecodeEvent() error = %v", err)
		}
		if !got.EndTime.Before(got.StartTime) {
			t.Error("midnight crosser lost its inverted time range")
		}
	})

	t.Run("rejects malformed lines", func(t *testing.T) {
		tests := []struct {
			name string
			line string
		}{
			{"empty", ""},
			{"too few fields", "a|b|c"},
			{"too many fields", record.EncodeEvent(e) + "|extra"},
			{"non-integer pk", strings.Replace(record.EncodeEvent(e), "|1201|", "|abc|", 1)},
			{"non-boolean full", strings.Replace(record.EncodeEvent(e), "|true|", "|maybe|", 1)},
			{"out-of-range hour", strings.Replace(record.EncodeEvent(e), "|23|30|", "|25|30|", 1)},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := record.DecodeEvent(tt.line)
				if !errors.Is(err, record.ErrMalformed) {
					t.Errorf("DecodeEvent(%q) error = %v, want ErrMalformed", tt.line, err)
				}
			})
		}
	})
}

func TestCategoryCodec(t *testing.T) {
	c := model.Category{
		Pk:          9,
		Name:        "Engineering",
		Description: "College of Engineering sessions",
		IsCollege:   true,
	}

	t.Run("round trips", func(t *testing.T) {
		got, err := record.DecodeCategory(record.EncodeCategory(c))
		if err != nil {
			t.Fatalf("DecodeCategory() error = %v", err)
		}
		if got != c {
			t.Errorf("round trip = %+v, want %+v", got, c)
		}
	})

	t.Run("keeps the historical field order", func(t *testing.T) {
		want := "9|Engineering|College of Engineering sessions|true"
		if got := record.EncodeCategory(c); got != want {
			t.Errorf("EncodeCategory() = %q, want %q", got, want)
		}
	})

	t.Run("rejects malformed lines", func(t *testing.T) {
		for _, line := range []string{"", "9|Engineering", "x|Engineering|d|true", "9|Engineering|d|yes|extra"} {
			if _, err := record.DecodeCategory(line); !errors.Is(err, record.ErrMalformed) {
				t.Errorf("DecodeCategory(%q) error = %v, want ErrMalformed", line, err)
			}
		}
	})
}

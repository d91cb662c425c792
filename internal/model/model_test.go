package model_test

import (
	"testing"
	"time"

	"cudays/internal/model"
)

func TestTime(t *testing.T) {
	t.Run("minutes after midnight", func(t *testing.T) {
		if got := (model.Time{Hour: 9, Minute: 45}).Minutes(); got != 585 {
			t.Errorf("Minutes() = %d, want 585", got)
		}
	})

	t.Run("before compares within the day", func(t *testing.T) {
		early := model.Time{Hour: 1, Minute: 0}
		late := model.Time{Hour: 23, Minute: 30}
		if !early.Before(late) {
			t.Error("01:00.Before(23:30) = false, want true")
		}
		if late.Before(early) {
			t.Error("23:30.Before(01:00) = true, want false")
		}
	})

	t.Run("valid range", func(t *testing.T) {
		for _, tt := range []struct {
			tm   model.Time
			want bool
		}{
			{model.Time{Hour: 0, Minute: 0}, true},
			{model.Time{Hour: 23, Minute: 59}, true},
			{model.Time{Hour: 24, Minute: 0}, false},
			{model.Time{Hour: 12, Minute: 60}, false},
			{model.Time{Hour: -1, Minute: 0}, false},
		} {
			if got := tt.tm.Valid(); got != tt.want {
				t.Errorf("%s.Valid() = %v, want %v", tt.tm, got, tt.want)
			}
		}
	})
}

func TestDay(t *testing.T) {
	t.Run("before compares calendar order", func(t *testing.T) {
		a := model.Day{Year: 2018, Month: 4, Day: 12}
		b := model.Day{Year: 2018, Month: 4, Day: 13}
		c := model.Day{Year: 2018, Month: 5, Day: 1}
		if !a.Before(b) || !b.Before(c) || b.Before(a) {
			t.Error("Day.Before() violates calendar order")
		}
	})

	t.Run("at builds the instant in the given location", func(t *testing.T) {
		d := model.Day{Year: 2018, Month: 4, Day: 12}
		got := d.At(model.Time{Hour: 23, Minute: 30}, time.UTC)
		want := time.Date(2018, 4, 12, 23, 30, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("At() = %v, want %v", got, want)
		}
	})

	t.Run("string format", func(t *testing.T) {
		d := model.Day{Year: 2018, Month: 4, Day: 2}
		if got := d.String(); got != "2018-04-02" {
			t.Errorf("String() = %q, want 2018-04-02", got)
		}
	})
}

func TestEvent_Same(t *testing.T) {
	a := model.Event{Pk: 7, Title: "Campus Tour"}
	b := model.Event{Pk: 7, Title: "Campus Tour (updated)"}
	c := model.Event{Pk: 8, Title: "Campus Tour"}

	if !a.Same(b) {
		t.Error("Same() = false for equal identities, want true")
	}
	if a.Same(c) {
		t.Error("Same() = true for different identities, want false")
	}
}

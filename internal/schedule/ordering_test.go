package schedule_test

import (
	"testing"

	"cudays/internal/model"
	"cudays/internal/schedule"
)

func event(day model.Day, hour, minute int) model.Event {
	return model.Event{
		Pk:        1,
		StartTime: model.Time{Hour: hour, Minute: minute},
		EndTime:   model.Time{Hour: hour + 1, Minute: minute},
		Date:      day,
	}
}

func TestEventOrder_Less(t *testing.T) {
	order := schedule.EventOrder{StartHour: 7, EndHour: 2}
	day1 := model.Day{Year: 2018, Month: 4, Day: 12}
	day2 := model.Day{Year: 2018, Month: 4, Day: 13}

	tests := []struct {
		name string
		a, b model.Event
		want bool
	}{
		{
			name: "earlier day sorts first regardless of time",
			a:    event(day1, 23, 0),
			b:    event(day2, 8, 0),
			want: true,
		},
		{
			name: "same day orders by start time",
			a:    event(day1, 9, 0),
			b:    event(day1, 10, 30),
			want: true,
		},
		{
			name: "same start time is not less",
			a:    event(day1, 9, 0),
			b:    event(day1, 9, 0),
			want: false,
		},
		{
			name: "minutes break ties within the hour",
			a:    event(day1, 9, 15),
			b:    event(day1, 9, 45),
			want: true,
		},
		{
			name: "late evening sorts before a past-midnight start",
			a:    event(day1, 23, 30),
			b:    event(day1, 1, 0),
			want: true,
		},
		{
			name: "past-midnight start sorts after morning",
			a:    event(day1, 8, 0),
			b:    event(day1, 1, 0),
			want: true,
		},
		{
			name: "start exactly at the end hour still counts as late night",
			a:    event(day1, 22, 0),
			b:    event(day1, 2, 0),
			want: true,
		},
		{
			name: "morning does not sort after evening",
			a:    event(day1, 20, 0),
			b:    event(day1, 8, 0),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := order.Less(tt.a, tt.b); got != tt.want {
				t.Errorf("Less(%s, %s) = %v, want %v", tt.a.StartTime, tt.b.StartTime, got, tt.want)
			}
		})
	}
}

// Any three events must order consistently: Less can never report a cycle.
func TestEventOrder_NoCycle(t *testing.T) {
	order := schedule.EventOrder{StartHour: 7, EndHour: 2}
	day := model.Day{Year: 2018, Month: 4, Day: 12}

	events := []model.Event{
		event(day, 1, 0),
		event(day, 3, 0), // gap-hour start, between end hour and start hour
		event(day, 8, 0),
		event(day, 23, 30),
	}

	for _, a := range events {
		for _, b := range events {
			for _, c := range events {
				if order.Less(a, b) && order.Less(b, c) && !order.Less(a, c) {
					t.Fatalf("ordering cycle: %s < %s < %s but not %s < %s",
						a.StartTime, b.StartTime, c.StartTime, a.StartTime, c.StartTime)
				}
			}
		}
	}
}

func TestCategoryLess(t *testing.T) {
	a := model.Category{Pk: 2, Name: "Arts and Sciences"}
	b := model.Category{Pk: 1, Name: "Engineering"}

	if !schedule.CategoryLess(a, b) {
		t.Errorf("CategoryLess(%q, %q) = false, want true", a.Name, b.Name)
	}
	if schedule.CategoryLess(b, a) {
		t.Errorf("CategoryLess(%q, %q) = true, want false", b.Name, a.Name)
	}
}

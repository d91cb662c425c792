package feed_test

import (
	"strings"
	"testing"

	"cudays/internal/feed"
	"cudays/internal/model"
)

const sampleDocument = `{
	"version": 42,
	"categories": {
		"changed": [
			{"pk": 3, "category": "Engineering", "description": "College of Engineering", "isCollege": true},
			{"pk": 14, "category": "Tour", "description": "", "isCollege": false}
		],
		"deleted": [9]
	},
	"events": {
		"changed": [
			{
				"pk": 1201,
				"name": "Late Night Skate",
				"location": "Lynah Rink",
				"description": "Skates provided.",
				"start_date": "2018-04-12",
				"start_time": "23:30",
				"end_time": "01:00",
				"college_category": 3,
				"type_category": 14,
				"place_ID": "ChIJfalse",
				"full": false,
				"image_pk": 7,
				"additional": ""
			}
		],
		"deleted": [88, 89]
	}
}`

func TestDecodeDelta(t *testing.T) {
	t.Run("decodes a full document", func(t *testing.T) {
		delta, err := feed.DecodeDelta(strings.NewReader(sampleDocument))
		if err != nil {
			t.Fatalf("DecodeDelta() error = %v", err)
		}

		if delta.Version != 42 {
			t.Errorf("Version = %d, want 42", delta.Version)
		}
		if len(delta.ChangedCategories) != 2 {
			t.Fatalf("ChangedCategories = %d, want 2", len(delta.ChangedCategories))
		}
		c := delta.ChangedCategories[0]
		if c.Pk != 3 || c.Name != "Engineering" || !c.IsCollege {
			t.Errorf("category = %+v, want pk 3 Engineering college", c)
		}
		if got := delta.DeletedCategoryPks; len(got) != 1 || got[0] != 9 {
			t.Errorf("DeletedCategoryPks = %v, want [9]", got)
		}

		if len(delta.ChangedEvents) != 1 {
			t.Fatalf("ChangedEvents = %d, want 1", len(delta.ChangedEvents))
		}
		e := delta.ChangedEvents[0]
		want := model.Event{
			Pk:              1201,
			Title:           "Late Night Skate",
			Caption:         "Lynah Rink",
			Description:     "Skates provided.",
			CollegeCategory: 3,
			TypeCategory:    14,
			StartTime:       model.Time{Hour: 23, Minute: 30},
			EndTime:         model.Time{Hour: 1, Minute: 0},
			Date:            model.Day{Year: 2018, Month: 4, Day: 12},
			PlaceID:         "ChIJfalse",
			ImagePk:         7,
		}
		if e != want {
			t.Errorf("event = %+v, want %+v", e, want)
		}
		if got := delta.DeletedEventPks; len(got) != 2 || got[0] != 88 || got[1] != 89 {
			t.Errorf("DeletedEventPks = %v, want [88 89]", got)
		}
	})

	t.Run("empty document yields an empty delta", func(t *testing.T) {
		delta, err := feed.DecodeDelta(strings.NewReader(`{"version": 7}`))
		if err != nil {
			t.Fatalf("DecodeDelta() error = %v", err)
		}
		if delta.Version != 7 || len(delta.ChangedEvents) != 0 || len(delta.ChangedCategories) != 0 {
			t.Errorf("delta = %+v, want empty at version 7", delta)
		}
	})

	t.Run("a bad event fails the whole document", func(t *testing.T) {
		tests := []struct {
			name string
			doc  string
		}{
			{"not json", "{"},
			{"bad start_date", `{"version":1,"events":{"changed":[{"pk":1,"start_date":"April 12","start_time":"10:00","end_time":"11:00"}]}}`},
			{"bad start_time", `{"version":1,"events":{"changed":[{"pk":1,"start_date":"2018-04-12","start_time":"10am","end_time":"11:00"}]}}`},
			{"bad end_time", `{"version":1,"events":{"changed":[{"pk":1,"start_date":"2018-04-12","start_time":"10:00","end_time":""}]}}`},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if _, err := feed.DecodeDelta(strings.NewReader(tt.doc)); err == nil {
					t.Error("DecodeDelta() error = nil, want decode failure")
				}
			})
		}
	})
}

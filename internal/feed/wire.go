// Package feed implements the remote update feed behind schedule.Feed.
//
// All backends speak the same JSON document format; they differ only in
// where the document comes from (an updates endpoint, an S3 object, a local
// file). A document that fails to decode fails the whole sync round: the
// feed never hands a partially parsed delta to the cache.
package feed

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"cudays/internal/model"
	"cudays/internal/schedule"
)

const (
	wireDateFormat = "2006-01-02"
	wireTimeFormat = "15:04"
)

// document is the feed wire format. Field names follow the original
// backend's JSON contract.
type document struct {
	Version    int64 `json:"version"`
	Categories struct {
		Changed []categoryJSON `json:"changed"`
		Deleted []int          `json:"deleted"`
	} `json:"categories"`
	Events struct {
		Changed []eventJSON `json:"changed"`
		Deleted []int       `json:"deleted"`
	} `json:"events"`
}

type categoryJSON struct {
	Pk          int    `json:"pk"`
	Category    string `json:"category"`
	Description string `json:"description"`
	IsCollege   bool   `json:"isCollege"`
}

type eventJSON struct {
	Pk              int    `json:"pk"`
	Name            string `json:"name"`
	Location        string `json:"location"`
	Description     string `json:"description"`
	StartDate       string `json:"start_date"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	CollegeCategory int    `json:"college_category"`
	TypeCategory    int    `json:"type_category"`
	PlaceID         string `json:"place_ID"`
	Full            bool   `json:"full"`
	ImagePk         int    `json:"image_pk"`
	Additional      string `json:"additional"`
}

// DecodeDelta reads one feed document from r and converts it to a Delta.
func DecodeDelta(r io.Reader) (*schedule.Delta, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding feed document: %w", err)
	}
	return doc.toDelta()
}

func (doc *document) toDelta() (*schedule.Delta, error) {
	delta := &schedule.Delta{
		Version:            doc.Version,
		DeletedCategoryPks: doc.Categories.Deleted,
		DeletedEventPks:    doc.Events.Deleted,
	}

	for _, c := range doc.Categories.Changed {
		delta.ChangedCategories = append(delta.ChangedCategories, model.Category{
			Pk:          c.Pk,
			Name:        c.Category,
			Description: c.Description,
			IsCollege:   c.IsCollege,
		})
	}

	for _, e := range doc.Events.Changed {
		ev, err := e.toModel()
		if err != nil {
			return nil, err
		}
		delta.ChangedEvents = append(delta.ChangedEvents, ev)
	}

	return delta, nil
}

func (e eventJSON) toModel() (model.Event, error) {
	date, err := time.Parse(wireDateFormat, e.StartDate)
	if err != nil {
		return model.Event{}, fmt.Errorf("event %d: bad start_date %q: %w", e.Pk, e.StartDate, err)
	}
	start, err := parseWireTime(e.StartTime)
	if err != nil {
		return model.Event{}, fmt.Errorf("event %d: bad start_time %q: %w", e.Pk, e.StartTime, err)
	}
	end, err := parseWireTime(e.EndTime)
	if err != nil {
		return model.Event{}, fmt.Errorf("event %d: bad end_time %q: %w", e.Pk, e.EndTime, err)
	}

	return model.Event{
		Pk:              e.Pk,
		Title:           e.Name,
		Caption:         e.Location,
		Description:     e.Description,
		Additional:      e.Additional,
		CollegeCategory: e.CollegeCategory,
		TypeCategory:    e.TypeCategory,
		StartTime:       start,
		EndTime:         end,
		Date:            model.Day{Year: date.Year(), Month: int(date.Month()), Day: date.Day()},
		PlaceID:         e.PlaceID,
		Full:            e.Full,
		ImagePk:         e.ImagePk,
	}, nil
}

func parseWireTime(s string) (model.Time, error) {
	t, err := time.Parse(wireTimeFormat, s)
	if err != nil {
		return model.Time{}, err
	}
	return model.Time{Hour: t.Hour(), Minute: t.Minute()}, nil
}

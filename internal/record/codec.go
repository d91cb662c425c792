// Package record encodes Event and Category values to the app's
// pipe-delimited on-disk record format and back.
//
// Field order and delimiter are a stable contract shared with earlier
// releases: changing either silently corrupts every installed cache.
// Encoding is total; decoding rejects rather than guesses. A failed decode
// is reported per record so callers can skip the bad line and keep the rest
// of a batch.
package record

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"cudays/internal/model"
)

// Delimiter joins record fields. Field values containing it are not
// escaped; the remote source does not produce them.
const Delimiter = "|"

const (
	eventFieldCount    = 17
	categoryFieldCount = 4
)

// ErrMalformed is wrapped by every decode failure.
var ErrMalformed = errors.New("malformed record")

// EncodeEvent renders an event as one record line. Never fails.
func EncodeEvent(e model.Event) string {
	fields := []string{
		e.Title,
		e.Caption,
		e.Description,
		strconv.Itoa(e.Pk),
		strconv.Itoa(e.StartTime.Hour),
		strconv.Itoa(e.StartTime.Minute),
		strconv.Itoa(e.EndTime.Hour),
		strconv.Itoa(e.EndTime.Minute),
		strconv.FormatBool(e.Full),
		strconv.Itoa(e.Date.Year),
		strconv.Itoa(e.Date.Month),
		strconv.Itoa(e.Date.Day),
		strconv.Itoa(e.CollegeCategory),
		strconv.Itoa(e.TypeCategory),
		e.PlaceID,
		strconv.Itoa(e.ImagePk),
		e.Additional,
	}
	return strings.Join(fields, Delimiter)
}

// DecodeEvent parses one event record line.
func DecodeEvent(line string) (model.Event, error) {
	parts := strings.Split(line, Delimiter)
	if len(parts) != eventFieldCount {
		return model.Event{}, fmt.Errorf("%w: event has %d fields, want %d", ErrMalformed, len(parts), eventFieldCount)
	}

	p := fieldParser{}
	e := model.Event{
		Title:       parts[0],
		Caption:     parts[1],
		Description: parts[2],
		Pk:          p.intField("pk", parts[3]),
		StartTime: model.Time{
			Hour:   p.intField("startHour", parts[4]),
			Minute: p.intField("startMinute", parts[5]),
		},
		EndTime: model.Time{
			Hour:   p.intField("endHour", parts[6]),
			Minute: p.intField("endMinute", parts[7]),
		},
		Full: p.boolField("full", parts[8]),
		Date: model.Day{
			Year:  p.intField("year", parts[9]),
			Month: p.intField("month", parts[10]),
			Day:   p.intField("day", parts[11]),
		},
		CollegeCategory: p.intField("collegeCategory", parts[12]),
		TypeCategory:    p.intField("typeCategory", parts[13]),
		PlaceID:         parts[14],
		ImagePk:         p.intField("imagePk", parts[15]),
		Additional:      parts[16],
	}
	if p.err != nil {
		return model.Event{}, p.err
	}
	if !e.StartTime.Valid() || !e.EndTime.Valid() {
		return model.Event{}, fmt.Errorf("%w: event %d has out-of-range time", ErrMalformed, e.Pk)
	}
	return e, nil
}

// EncodeCategory renders a category as one record line. Never fails.
func EncodeCategory(c model.Category) string {
	fields := []string{
		strconv.Itoa(c.Pk),
		c.Name,
		c.Description,
		strconv.FormatBool(c.IsCollege),
	}
	return strings.Join(fields, Delimiter)
}

// DecodeCategory parses one category record line.
func DecodeCategory(line string) (model.Category, error) {
	parts := strings.Split(line, Delimiter)
	if len(parts) != categoryFieldCount {
		return model.Category{}, fmt.Errorf("%w: category has %d fields, want %d", ErrMalformed, len(parts), categoryFieldCount)
	}

	p := fieldParser{}
	c := model.Category{
		Pk:          p.intField("pk", parts[0]),
		Name:        parts[1],
		Description: parts[2],
		IsCollege:   p.boolField("isCollege", parts[3]),
	}
	if p.err != nil {
		return model.Category{}, p.err
	}
	return c, nil
}

// fieldParser accumulates the first parse failure across a record's typed
// fields so decode call sites stay flat.
type fieldParser struct {
	err error
}

func (p *fieldParser) intField(name, value string) int {
	n, err := strconv.Atoi(value)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("%w: field %s: %q is not an integer", ErrMalformed, name, value)
	}
	return n
}

func (p *fieldParser) boolField(name, value string) bool {
	b, err := strconv.ParseBool(value)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("%w: field %s: %q is not a boolean", ErrMalformed, name, value)
	}
	return b
}

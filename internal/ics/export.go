// Package ics renders the user's agenda as an iCalendar feed so it can be
// imported into a phone or desktop calendar.
package ics

import (
	"bytes"
	"fmt"
	"time"

	"github.com/emersion/go-ical"

	"cudays/internal/model"
)

const (
	propVersion = "VERSION"
	propProdid  = "PRODID"
	propUID     = "UID"
	propSummary = "SUMMARY"
	propLoc     = "LOCATION"
	propDesc    = "DESCRIPTION"
	propDTStamp = "DTSTAMP"
	propDTStart = "DTSTART"
	propDTEnd   = "DTEND"

	prodid    = "-//cudays//agenda//EN"
	uidDomain = "cudays"
)

// Agenda renders the given events (expected in display order) as an
// iCalendar document in loc. now stamps the generation time.
func Agenda(events []model.Event, now time.Time, loc *time.Location) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(propVersion, "2.0")
	cal.Props.SetText(propProdid, prodid)

	dtStamp := ical.NewProp(propDTStamp)
	dtStamp.SetDateTime(now.UTC())

	for _, e := range events {
		event := ical.NewEvent()
		event.Props.SetText(propUID, fmt.Sprintf("event-%d@%s", e.Pk, uidDomain))
		event.Props.SetText(propSummary, e.Title)
		if e.Caption != "" {
			event.Props.SetText(propLoc, e.Caption)
		}
		if e.Description != "" {
			event.Props.SetText(propDesc, e.Description)
		}
		event.Props.Set(dtStamp)

		start := e.Date.At(e.StartTime, loc)
		end := e.Date.At(e.EndTime, loc)
		if !start.Before(end) {
			// Crosses midnight: the end belongs to the next day.
			end = end.AddDate(0, 0, 1)
		}

		dtStart := ical.NewProp(propDTStart)
		dtStart.SetDateTime(start)
		event.Props.Set(dtStart)

		dtEnd := ical.NewProp(propDTEnd)
		dtEnd.SetDateTime(end)
		event.Props.Set(dtEnd)

		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("encoding agenda calendar: %w", err)
	}
	return buf.Bytes(), nil
}

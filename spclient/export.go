package spclient

import (
	"bytes"
	"fmt"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
)

// ExceptionsToICS renders calendar exceptions as an iCalendar document, one
// VEVENT per exception, so they can be overlaid on a regular calendar client
func ExceptionsToICS(calendarName string, exceptions []CalendarException) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText("PRODID", "-//github.com/libspoint/libspoint//NONSGML v1.0//EN")
	cal.Props.SetText("VERSION", "2.0")
	if calendarName != "" {
		cal.Props.SetText("X-WR-CALNAME", calendarName)
	}

	for _, exc := range exceptions {
		event := ical.NewEvent()
		event.Props.SetText("UID", uuid.New().String())
		event.Props.SetText("SUMMARY", exc.Name)
		event.Props.SetDateTime("DTSTAMP", time.Now().UTC())
		event.Props.SetDateTime("DTSTART", exc.Start)
		event.Props.SetDateTime("DTEND", exc.Finish)
		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("failed to encode calendar: %w", err)
	}
	return buf.Bytes(), nil
}

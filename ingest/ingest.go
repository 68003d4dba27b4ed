// Package ingest converts external calendar formats into timeline
// documents.
package ingest

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/theHooloovoo/Saga/models"
)

// Processor defines the interface that all importers must implement.
type Processor interface {
	// Process takes raw data bytes and returns a timeline document.
	Process(data []byte) (*models.Document, error)

	// Name returns the name of the processor.
	Name() string
}

// ICSProcessor imports iCalendar data.
type ICSProcessor struct{}

// NewICSProcessor creates an iCalendar importer.
func NewICSProcessor() *ICSProcessor {
	return &ICSProcessor{}
}

// Name returns the name of the processor.
func (p *ICSProcessor) Name() string {
	return "iCalendar Processor"
}

// Process reads an iCalendar payload into a fresh document: one event per
// VEVENT, ordered by start, under the root node. Instants keep their
// wall-clock reading at minute resolution; no zone arithmetic is applied.
func (p *ICSProcessor) Process(data []byte) (*models.Document, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty calendar payload")
	}
	cal, err := ical.ParseCalendar(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing calendar: %w", err)
	}
	events := make([]*models.Event, 0, len(cal.Events()))
	for _, ve := range cal.Events() {
		event, err := convertVEvent(ve)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Datetime.Start.Before(events[j].Datetime.Start)
	})
	doc := models.Blank()
	for _, e := range events {
		doc.Data.Push(models.Value{Event: e})
	}
	return doc, nil
}

// convertVEvent maps one VEVENT: summary (or UID) to the name, description
// and location to description lines, DTSTART/DTEND to the date. An absent
// end, or one equal to the start, yields a point date.
func convertVEvent(ve *ical.VEvent) (*models.Event, error) {
	name := propValue(ve, ical.ComponentPropertySummary)
	if name == "" {
		name = propValue(ve, ical.ComponentPropertyUniqueId)
	}
	if name == "" {
		name = "(untitled)"
	}
	start, err := ve.GetStartAt()
	if err != nil {
		return nil, fmt.Errorf("event %q has no usable start: %w", name, err)
	}
	when := models.NewDate(wallClock(start))
	if end, err := ve.GetEndAt(); err == nil {
		e := wallClock(end)
		if e.After(when.Start) {
			when = models.NewDateRange(when.Start, e)
		}
	}
	event := models.NewEvent(name, when)
	if desc := propValue(ve, ical.ComponentPropertyDescription); desc != "" {
		event.AddDescription(desc)
	}
	if loc := propValue(ve, ical.ComponentPropertyLocation); loc != "" {
		event.AddDescription(loc)
	}
	return event, nil
}

func propValue(ve *ical.VEvent, name ical.ComponentProperty) string {
	if p := ve.GetProperty(name); p != nil {
		return p.Value
	}
	return ""
}

// wallClock rereads an instant's clock fields in local time, dropping both
// zone arithmetic and sub-minute precision.
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, time.Local)
}

package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Event is a leaf of the timeline tree: a named occurrence at a point or
// span of time, with free-form description lines.
type Event struct {
	Name         string   `json:"name"`
	Descriptions []string `json:"descriptions"`
	Datetime     Date     `json:"datetime"`
}

// IndexError reports a description index outside the valid range.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range for length %d", e.Index, e.Len)
}

// NewEvent creates an event with no descriptions.
func NewEvent(name string, d Date) *Event {
	return &Event{Name: name, Descriptions: []string{}, Datetime: d}
}

// SetName replaces the event's name.
func (e *Event) SetName(name string) {
	e.Name = name
}

// SetDates replaces the event's date.
func (e *Event) SetDates(d Date) {
	e.Datetime = d
}

// AddDescription appends a description line.
func (e *Event) AddDescription(s string) {
	e.Descriptions = append(e.Descriptions, s)
}

// ChangeDescription replaces the description at i. Indices are zero based.
func (e *Event) ChangeDescription(i int, s string) error {
	if i < 0 || i >= len(e.Descriptions) {
		return &IndexError{Index: i, Len: len(e.Descriptions)}
	}
	e.Descriptions[i] = s
	return nil
}

// DeleteDescription removes the description at i, preserving the order of
// the rest. Indices are zero based.
func (e *Event) DeleteDescription(i int) error {
	if i < 0 || i >= len(e.Descriptions) {
		return &IndexError{Index: i, Len: len(e.Descriptions)}
	}
	e.Descriptions = append(e.Descriptions[:i], e.Descriptions[i+1:]...)
	return nil
}

// Location places the event's date within (lo, hi).
func (e *Event) Location(lo, hi int64) (float64, *float64) {
	return e.Datetime.Location(lo, hi)
}

// Matches reports whether query occurs in the event's name or in any of its
// descriptions. Matching is case sensitive.
func (e *Event) Matches(query string) bool {
	if strings.Contains(e.Name, query) {
		return true
	}
	for _, d := range e.Descriptions {
		if strings.Contains(d, query) {
			return true
		}
	}
	return false
}

// Summary is the one-line form used by listings.
func (e *Event) Summary() string {
	return fmt.Sprintf("Event: %s, [%s]", e.Name, e.Datetime)
}

func (e *Event) printTo(b *strings.Builder, depth int, verbose bool) {
	pad := strings.Repeat("  ", depth)
	fmt.Fprintf(b, "%s%s\n", pad, e.Summary())
	if verbose {
		for _, d := range e.Descriptions {
			fmt.Fprintf(b, "%s  - %s\n", pad, d)
		}
	}
}

// UnmarshalJSON fills the defaults the on-disk form may omit.
func (e *Event) UnmarshalJSON(data []byte) error {
	type alias Event
	var aux alias
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Descriptions == nil {
		aux.Descriptions = []string{}
	}
	*e = Event(aux)
	return nil
}

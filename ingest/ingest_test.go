package ingest

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Processor = (*ICSProcessor)(nil)

// calendar folds VEVENT property lines into a VCALENDAR payload with the
// CRLF line endings the format mandates.
func calendar(events ...[]string) []byte {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//saga//test//EN",
	}
	for _, ev := range events {
		lines = append(lines, "BEGIN:VEVENT")
		lines = append(lines, ev...)
		lines = append(lines, "END:VEVENT")
	}
	lines = append(lines, "END:VCALENDAR")
	return []byte(strings.Join(lines, "\r\n") + "\r\n")
}

func TestProcessorName(t *testing.T) {
	assert.Equal(t, "iCalendar Processor", NewICSProcessor().Name())
}

func TestProcessCalendar(t *testing.T) {
	// Deliberately out of chronological order.
	payload := calendar(
		[]string{
			"UID:launch-1",
			"DTSTAMP:20000101T000000Z",
			"SUMMARY:launch window",
			"DTSTART:20000601T120000Z",
			"DTEND:20000603T180000Z",
			"DESCRIPTION:countdown holds expected",
			"LOCATION:pad 39a",
		},
		[]string{
			"UID:standup-1",
			"DTSTAMP:20000101T000000Z",
			"SUMMARY:standup",
			"DTSTART:20000301T090010Z",
			"DTEND:20000301T090045Z",
		},
		[]string{
			"UID:team-sync-42",
			"DTSTAMP:20000101T000000Z",
			"DTSTART:20000115T080000Z",
		},
		[]string{
			"DTSTAMP:20000101T000000Z",
			"DTSTART:20000110T070000Z",
		},
	)

	doc, err := NewICSProcessor().Process(payload)
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.Equal(t, 1920.0, doc.X)
	assert.Equal(t, 1080.0, doc.Y)
	require.Len(t, doc.Data.Children, 4)
	for _, child := range doc.Data.Children {
		require.NotNil(t, child.Event)
		require.Nil(t, child.Node)
	}

	untitled := doc.Data.Children[0].Event
	assert.Equal(t, "(untitled)", untitled.Name)
	assert.Equal(t, time.Date(2000, time.January, 10, 7, 0, 0, 0, time.Local), untitled.Datetime.Start)
	assert.Nil(t, untitled.Datetime.End)
	assert.Empty(t, untitled.Descriptions)

	sync := doc.Data.Children[1].Event
	assert.Equal(t, "team-sync-42", sync.Name)
	assert.Equal(t, time.Date(2000, time.January, 15, 8, 0, 0, 0, time.Local), sync.Datetime.Start)
	assert.Nil(t, sync.Datetime.End)

	// Seconds are dropped, so an end inside the same minute collapses to an
	// instant.
	standup := doc.Data.Children[2].Event
	assert.Equal(t, "standup", standup.Name)
	assert.Equal(t, time.Date(2000, time.March, 1, 9, 0, 0, 0, time.Local), standup.Datetime.Start)
	assert.Nil(t, standup.Datetime.End)

	launch := doc.Data.Children[3].Event
	assert.Equal(t, "launch window", launch.Name)
	assert.Equal(t, time.Date(2000, time.June, 1, 12, 0, 0, 0, time.Local), launch.Datetime.Start)
	require.NotNil(t, launch.Datetime.End)
	assert.Equal(t, time.Date(2000, time.June, 3, 18, 0, 0, 0, time.Local), *launch.Datetime.End)
	assert.Equal(t, []string{"countdown holds expected", "pad 39a"}, launch.Descriptions)
}

func TestProcessEmptyCalendar(t *testing.T) {
	payload := calendar()

	doc, err := NewICSProcessor().Process(payload)
	require.NoError(t, err)
	assert.True(t, doc.Data.IsEmpty())
}

func TestProcessEmptyPayload(t *testing.T) {
	for _, data := range [][]byte{nil, {}} {
		doc, err := NewICSProcessor().Process(data)
		assert.Nil(t, doc)
		assert.EqualError(t, err, "empty calendar payload")
	}
}

func TestProcessGarbage(t *testing.T) {
	doc, err := NewICSProcessor().Process([]byte("this is not a calendar"))
	assert.Nil(t, doc)
	require.Error(t, err)
	assert.ErrorContains(t, err, "parsing calendar")
}

func TestProcessEventWithoutStart(t *testing.T) {
	payload := calendar([]string{
		"UID:ghost-1",
		"DTSTAMP:20000101T000000Z",
		"SUMMARY:ghost",
	})

	doc, err := NewICSProcessor().Process(payload)
	assert.Nil(t, doc)
	require.Error(t, err)
	assert.ErrorContains(t, err, `event "ghost" has no usable start`)
}

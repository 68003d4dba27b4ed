package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// dateLayout is the canonical display and on-disk form, day first.
const dateLayout = "02/01/2006 15:04"

// dateParseLayout additionally accepts one-digit day, month, hour and minute.
const dateParseLayout = "2/1/2006 15:4"

// Date is a point or span in wall-clock local time at minute resolution.
// End is nil for point dates; when present, Start precedes it.
type Date struct {
	Start time.Time
	End   *time.Time
}

// DateParseError reports input that does not read as a date or date range.
type DateParseError struct {
	Input string
	Err   error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("not a date: %q: %v", e.Input, e.Err)
}

func (e *DateParseError) Unwrap() error { return e.Err }

// ParseDate reads an instant in the form "26/12/1997 14:30", or a range as
// two such instants joined by "-". Whitespace around either half is ignored.
func ParseDate(s string) (Date, error) {
	if i := strings.Index(s, "-"); i >= 0 {
		start, err := parseInstant(s[:i])
		if err != nil {
			return Date{}, &DateParseError{Input: s, Err: err}
		}
		end, err := parseInstant(s[i+1:])
		if err != nil {
			return Date{}, &DateParseError{Input: s, Err: err}
		}
		return Date{Start: start, End: &end}, nil
	}
	start, err := parseInstant(s)
	if err != nil {
		return Date{}, &DateParseError{Input: s, Err: err}
	}
	return Date{Start: start}, nil
}

func parseInstant(s string) (time.Time, error) {
	return time.ParseInLocation(dateParseLayout, strings.TrimSpace(s), time.Local)
}

// NewDate builds a point date, truncated to the minute.
func NewDate(t time.Time) Date {
	return Date{Start: t.Truncate(time.Minute)}
}

// NewDateRange builds a spanning date, both ends truncated to the minute.
func NewDateRange(start, end time.Time) Date {
	e := end.Truncate(time.Minute)
	return Date{Start: start.Truncate(time.Minute), End: &e}
}

// String renders the canonical form, " - " joining the halves of a range.
func (d Date) String() string {
	if d.End != nil {
		return d.Start.Format(dateLayout) + " - " + d.End.Format(dateLayout)
	}
	return d.Start.Format(dateLayout)
}

// MarshalJSON writes the canonical string form.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON reads the canonical string form.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Stamps returns the date as epoch seconds. End is nil for point dates.
func (d Date) Stamps() (int64, *int64) {
	if d.End == nil {
		return d.Start.Unix(), nil
	}
	end := d.End.Unix()
	return d.Start.Unix(), &end
}

// ExpandRange widens (lo, hi) to include this date. An absent end neither
// tightens lo nor raises hi.
func (d Date) ExpandRange(lo, hi int64) (int64, int64) {
	start := d.Start.Unix()
	lo = min(lo, start)
	hi = max(hi, start)
	if d.End != nil {
		end := d.End.Unix()
		lo = min(lo, end)
		hi = max(hi, end)
	}
	return lo, hi
}

// Location places the date within (lo, hi) as fractions of the span. The
// caller guarantees hi > lo.
func (d Date) Location(lo, hi int64) (float64, *float64) {
	span := float64(hi - lo)
	u := float64(d.Start.Unix()-lo) / span
	if d.End == nil {
		return u, nil
	}
	v := float64(d.End.Unix()-lo) / span
	return u, &v
}

package models

import (
	"encoding/json"
	"time"
)

// DrawType selects how a graph series is drawn within its node's band.
type DrawType string

// The supported series styles.
const (
	DrawScatter  DrawType = "Scatter"
	DrawLine     DrawType = "Line"
	DrawLineArea DrawType = "LineArea"
)

// GraphPoint is one sample of a graph series: an instant and a value.
type GraphPoint struct {
	At    time.Time
	Value float64
}

// MarshalJSON writes the point as an [instant, value] pair.
func (p GraphPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{p.At.Format(dateLayout), p.Value})
}

// UnmarshalJSON reads the [instant, value] pair form.
func (p *GraphPoint) UnmarshalJSON(data []byte) error {
	var pair [2]json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	var s string
	if err := json.Unmarshal(pair[0], &s); err != nil {
		return err
	}
	at, err := parseInstant(s)
	if err != nil {
		return &DateParseError{Input: s, Err: err}
	}
	var v float64
	if err := json.Unmarshal(pair[1], &v); err != nil {
		return err
	}
	*p = GraphPoint{At: at, Value: v}
	return nil
}

// Graph is a data series drawn within its node's band. Values scale by
// YScale against the band height; instants place points horizontally the
// same way event dates do.
type Graph struct {
	Data     []GraphPoint `json:"data"`
	YScale   float64      `json:"y_scale"`
	Color    Color        `json:"color"`
	DrawType DrawType     `json:"draw_type"`
}

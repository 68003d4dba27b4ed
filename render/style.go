package render

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Style controls how a document is drawn. The zero value is unusable; start
// from DefaultStyle or LoadStyle.
type Style struct {
	EventFill        string  `yaml:"event_fill"`
	EventStroke      string  `yaml:"event_stroke"`
	EventStrokeWidth float64 `yaml:"event_stroke_width"`
	LineStroke       string  `yaml:"line_stroke"`
	LineStrokeWidth  float64 `yaml:"line_stroke_width"`
	Background       string  `yaml:"background"`
	Scheme           string  `yaml:"scheme"`
	Sketch           Sketch  `yaml:"sketch"`
}

// Sketch jitters every primitive with smooth noise for a hand-drawn look.
type Sketch struct {
	Enabled   bool    `yaml:"enabled"`
	Amplitude float64 `yaml:"amplitude"`
	Frequency float64 `yaml:"frequency"`
	Seed      int64   `yaml:"seed"`
}

// DefaultStyle returns the stock look: sand-colored event bands with slate
// strokes on a bare canvas.
func DefaultStyle() *Style {
	return &Style{
		EventFill:        "#C3B2A4",
		EventStroke:      "#2E3D50",
		EventStrokeWidth: 2,
		LineStroke:       "#000000",
		LineStrokeWidth:  5,
		Sketch: Sketch{
			Amplitude: 4,
			Frequency: 0.05,
			Seed:      1,
		},
	}
}

// LoadStyle reads a YAML style file over the defaults. An empty path means
// the defaults alone.
func LoadStyle(path string) (*Style, error) {
	style := DefaultStyle()
	if path == "" {
		return style, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading style %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, style); err != nil {
		return nil, fmt.Errorf("parsing style %s: %w", path, err)
	}
	style.normalize()
	return style, nil
}

// normalize backfills values a style file zeroed or left nonsensical.
func (s *Style) normalize() {
	def := DefaultStyle()
	if s.EventFill == "" {
		s.EventFill = def.EventFill
	}
	if s.EventStroke == "" {
		s.EventStroke = def.EventStroke
	}
	if s.EventStrokeWidth <= 0 {
		s.EventStrokeWidth = def.EventStrokeWidth
	}
	if s.LineStroke == "" {
		s.LineStroke = def.LineStroke
	}
	if s.LineStrokeWidth <= 0 {
		s.LineStrokeWidth = def.LineStrokeWidth
	}
	if s.Sketch.Amplitude <= 0 {
		s.Sketch.Amplitude = def.Sketch.Amplitude
	}
	if s.Sketch.Frequency <= 0 {
		s.Sketch.Frequency = def.Sketch.Frequency
	}
}

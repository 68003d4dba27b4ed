// Package render turns timeline documents into vector scenes and encodes
// them as images.
package render

// Point is a canvas coordinate, origin top left.
type Point struct {
	X float64
	Y float64
}

// Path is a polyline, optionally closed into a polygon.
type Path struct {
	Points      []Point
	Closed      bool
	Fill        string
	Stroke      string
	StrokeWidth float64
}

// Segment is a single straight stroke.
type Segment struct {
	From        Point
	To          Point
	Stroke      string
	StrokeWidth float64
}

// Circle is a filled dot, used by scatter series.
type Circle struct {
	Center Point
	Radius float64
	Fill   string
}

// Scene is everything to draw, in canvas coordinates.
type Scene struct {
	Width      float64
	Height     float64
	Background string
	Paths      []Path
	Segments   []Segment
	Circles    []Circle
}

// IsEmpty reports whether the scene holds no primitives.
func (s *Scene) IsEmpty() bool {
	return len(s.Paths) == 0 && len(s.Segments) == 0 && len(s.Circles) == 0
}

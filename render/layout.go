package render

import (
	"github.com/theHooloovoo/Saga/models"
)

// Fractions of the canvas height: how far down the first band starts, and
// how tall each event band is.
const (
	ySlideFactor = 0.1
	heightFactor = 0.2
)

// Layout places a document on its canvas as drawable primitives. Documents
// with no events, or whose events span no time at all, lay out as an empty
// scene.
func Layout(doc *models.Document, style *Style) *Scene {
	scene := &Scene{Width: doc.X, Height: doc.Y, Background: style.Background}
	if doc.Data.IsEmpty() {
		return scene
	}
	lo, hi := doc.Data.Range()
	if hi-lo == 0 {
		return scene
	}
	ySlide := ySlideFactor * doc.Y
	height := heightFactor * doc.Y

	doc.Data.WalkEvents(func(e *models.Event, p models.Placement) bool {
		u, v := e.Location(lo, hi)
		x := u * doc.X
		yTop := p.Offset*p.Scale*doc.Y*float64(p.Depth) + ySlide
		fill := resolveFill(doc, style, p)
		if v != nil {
			x2 := *v * doc.X
			scene.Paths = append(scene.Paths, Path{
				Points: []Point{
					{x, yTop},
					{x2, yTop},
					{x2, yTop + height},
					{x, yTop + height},
				},
				Closed:      true,
				Fill:        fill,
				Stroke:      style.EventStroke,
				StrokeWidth: style.EventStrokeWidth,
			})
		} else {
			scene.Segments = append(scene.Segments, Segment{
				From:        Point{x, yTop},
				To:          Point{x, yTop + height},
				Stroke:      style.EventStroke,
				StrokeWidth: style.EventStrokeWidth,
			})
		}
		return true
	})

	for _, line := range doc.Data.Lines(lo, hi) {
		y := line.Y*doc.Y + ySlide
		scene.Segments = append(scene.Segments, Segment{
			From:        Point{line.Start * doc.X, y},
			To:          Point{line.End * doc.X, y},
			Stroke:      style.LineStroke,
			StrokeWidth: style.LineStrokeWidth,
		})
	}

	doc.Data.WalkNodes(func(nd *models.Node, p models.Placement) bool {
		if len(nd.Graphs) == 0 {
			return true
		}
		// Series share the band an event of this node would occupy.
		imposed := p.Impose(nd)
		yTop := imposed.Offset*imposed.Scale*doc.Y*float64(p.Depth) + ySlide
		for _, g := range nd.Graphs {
			drawSeries(scene, g, yTop, height, doc.X, lo, hi)
		}
		return true
	})

	if style.Sketch.Enabled {
		applySketch(scene, style.Sketch)
	}
	return scene
}

// resolveFill picks an event's fill: the nearest color override, then the
// active color scheme cycled by depth, then the style's stock fill.
func resolveFill(doc *models.Document, style *Style, p models.Placement) string {
	if p.Color != nil {
		return p.Color.Hex()
	}
	name := p.Scheme
	if name == "" {
		name = style.Scheme
	}
	if name != "" {
		if scheme, ok := doc.ColorSchemes[name]; ok && len(scheme) > 0 {
			return scheme[p.Depth%len(scheme)].Hex()
		}
	}
	return style.EventFill
}

// drawSeries adds one graph series to the scene within its node's band.
// Values scale against the band height, growing upward from its bottom edge.
func drawSeries(scene *Scene, g models.Graph, yTop, height, width float64, lo, hi int64) {
	if len(g.Data) == 0 {
		return
	}
	span := float64(hi - lo)
	pts := make([]Point, len(g.Data))
	for i, sample := range g.Data {
		u := float64(sample.At.Unix()-lo) / span
		pts[i] = Point{
			X: u * width,
			Y: yTop + height - sample.Value*g.YScale*height,
		}
	}
	switch g.DrawType {
	case models.DrawScatter:
		for _, pt := range pts {
			scene.Circles = append(scene.Circles, Circle{
				Center: pt,
				Radius: 3,
				Fill:   g.Color.Hex(),
			})
		}
	case models.DrawLine:
		scene.Paths = append(scene.Paths, Path{
			Points:      pts,
			Stroke:      g.Color.Hex(),
			StrokeWidth: 2,
		})
	case models.DrawLineArea:
		base := yTop + height
		area := make([]Point, 0, len(pts)+2)
		area = append(area, pts...)
		area = append(area,
			Point{pts[len(pts)-1].X, base},
			Point{pts[0].X, base},
		)
		scene.Paths = append(scene.Paths, Path{
			Points: area,
			Closed: true,
			Fill:   g.Color.Hex(),
		})
	}
}

package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/theHooloovoo/Saga/models"
)

// Renderer turns a document into image bytes.
type Renderer interface {
	// Render lays the document out under the given style and encodes it.
	Render(doc *models.Document, style *Style) ([]byte, error)

	// Name returns the name of the renderer.
	Name() string

	// Description returns a description of the renderer.
	Description() string
}

// SVGRenderer emits Scalable Vector Graphics.
type SVGRenderer struct{}

// Name returns the name of the renderer.
func (r *SVGRenderer) Name() string {
	return "SVG Renderer"
}

// Description returns a description of the renderer.
func (r *SVGRenderer) Description() string {
	return "Renders timeline documents as Scalable Vector Graphics (SVG)"
}

// Render lays the document out and encodes the scene.
func (r *SVGRenderer) Render(doc *models.Document, style *Style) ([]byte, error) {
	if style == nil {
		style = DefaultStyle()
	}
	return EncodeSVG(Layout(doc, style)), nil
}

// EncodeSVG writes the scene as an SVG image.
func EncodeSVG(scene *Scene) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<svg width="%g" height="%g" viewBox="0 0 %g %g" xmlns="http://www.w3.org/2000/svg">
`, scene.Width, scene.Height, scene.Width, scene.Height))

	if scene.Background != "" {
		buf.WriteString(fmt.Sprintf(`<rect width="100%%" height="100%%" fill="%s"/>`+"\n", scene.Background))
	}

	for _, p := range scene.Paths {
		buf.WriteString(fmt.Sprintf(`<path d="%s" fill="%s" stroke="%s" stroke-width="%g"/>`+"\n",
			pathData(p), orNone(p.Fill), orNone(p.Stroke), p.StrokeWidth))
	}
	for _, s := range scene.Segments {
		buf.WriteString(fmt.Sprintf(`<line x1="%g" y1="%g" x2="%g" y2="%g" stroke="%s" stroke-width="%g"/>`+"\n",
			s.From.X, s.From.Y, s.To.X, s.To.Y, orNone(s.Stroke), s.StrokeWidth))
	}
	for _, c := range scene.Circles {
		buf.WriteString(fmt.Sprintf(`<circle cx="%g" cy="%g" r="%g" fill="%s"/>`+"\n",
			c.Center.X, c.Center.Y, c.Radius, orNone(c.Fill)))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// pathData renders a path as SVG path commands.
func pathData(p Path) string {
	var b strings.Builder
	for i, pt := range p.Points {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&b, "%s%g,%g ", cmd, pt.X, pt.Y)
	}
	s := strings.TrimSpace(b.String())
	if p.Closed {
		s += " Z"
	}
	return s
}

func orNone(color string) string {
	if color == "" {
		return "none"
	}
	return color
}

// Package models defines the timeline document data model: dated events
// arranged in a tree of nodes, plus the canvas and styling metadata that
// travels with them on disk.
package models

import (
	"encoding/json"
	"fmt"
)

// Color is an 8-bit RGB triple.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Hex renders the #rrggbb form used by renderers.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Document is a whole timeline file: canvas dimensions, named color
// schemes, and the event tree.
type Document struct {
	X            float64            `json:"x"`
	Y            float64            `json:"y"`
	Padding      float64            `json:"padding"`
	ColorSchemes map[string][]Color `json:"color_schemes"`
	Data         Node               `json:"data"`
}

// Default canvas size for new documents.
const (
	DefaultWidth  = 1920.0
	DefaultHeight = 1080.0
)

// Blank creates an empty document on the default canvas.
func Blank() *Document {
	return &Document{
		X:            DefaultWidth,
		Y:            DefaultHeight,
		ColorSchemes: map[string][]Color{},
		Data:         *FromValues(),
	}
}

// Query resolves a one-based path against the document's tree.
func (d *Document) Query(path []int) (Query, error) {
	return d.Data.Query(path)
}

// Print renders the tree as indented text.
func (d *Document) Print(verbose bool) string {
	return d.Data.Print(0, verbose)
}

// Catenate merges documents into one. The canvas and padding grow to the
// largest seen, color schemes union with later documents winning name
// clashes, and the root children concatenate in input order.
func Catenate(docs []*Document) *Document {
	if len(docs) == 0 {
		return Blank()
	}
	out := &Document{
		ColorSchemes: map[string][]Color{},
		Data:         *FromValues(),
	}
	for _, d := range docs {
		out.X = max(out.X, d.X)
		out.Y = max(out.Y, d.Y)
		out.Padding = max(out.Padding, d.Padding)
		for name, scheme := range d.ColorSchemes {
			out.ColorSchemes[name] = scheme
		}
		out.Data.Children = append(out.Data.Children, d.Data.Children...)
	}
	return out
}

// UnmarshalJSON fills the defaults the on-disk form may omit.
func (d *Document) UnmarshalJSON(data []byte) error {
	type alias Document
	aux := alias{Data: *FromValues()}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.ColorSchemes == nil {
		aux.ColorSchemes = map[string][]Color{}
	}
	*d = Document(aux)
	return nil
}

// Encode renders the document as indented JSON with a trailing newline.
func (d *Document) Encode() ([]byte, error) {
	b, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// Decode parses a document from JSON bytes.
func Decode(data []byte) (*Document, error) {
	d := &Document{}
	if err := json.Unmarshal(data, d); err != nil {
		return nil, err
	}
	return d, nil
}

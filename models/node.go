package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// LineRule asks for a horizontal rule across the node's extent. A nil
// Interval draws the rule without tick marks; tick rendering for a set
// interval is reserved.
type LineRule struct {
	Interval *float64 `json:"interval"`
}

// Node is an interior element of the timeline tree. Offset and YScale place
// its children vertically relative to the context the node itself was
// placed in.
type Node struct {
	Name          *string   `json:"name,omitempty"`
	StyleOverride *string   `json:"style_override,omitempty"`
	ColorOverride *Color    `json:"color_override,omitempty"`
	Offset        float64   `json:"offset"`
	YScale        float64   `json:"y_scale"`
	Line          *LineRule `json:"line,omitempty"`
	Graphs        []Graph   `json:"graphs,omitempty"`
	Children      []Value   `json:"children"`
}

// NewNode creates a named node with the given children.
func NewNode(name string, children ...Value) *Node {
	n := FromValues(children...)
	n.Name = &name
	return n
}

// FromValues creates an unnamed node with the given children.
func FromValues(children ...Value) *Node {
	if children == nil {
		children = []Value{}
	}
	return &Node{
		YScale:   1,
		Graphs:   []Graph{},
		Children: children,
	}
}

// Push appends a child, preserving order.
func (n *Node) Push(v Value) {
	n.Children = append(n.Children, v)
}

// SetName replaces the node's name; nil clears it.
func (n *Node) SetName(name *string) {
	n.Name = name
}

// SetOffset replaces the vertical offset applied to children.
func (n *Node) SetOffset(v float64) {
	n.Offset = v
}

// SetScale replaces the vertical scale applied to children.
func (n *Node) SetScale(v float64) {
	n.YScale = v
}

// SetLine replaces the node's line rule; nil clears it.
func (n *Node) SetLine(rule *LineRule) {
	n.Line = rule
}

// Placement is the context a tree element was placed in: the inherited
// offset and scale, the element's depth, and the styling imposed by the
// nearest ancestor that set any.
type Placement struct {
	Offset float64
	Scale  float64
	Depth  int
	Color  *Color
	Scheme string
}

// Transform is one inherited (offset, scale) pair.
type Transform struct {
	Offset float64
	Scale  float64
}

// Impose returns the context n passes down to its children when n itself
// was placed at p: the offset and scale fold in n's own, the depth grows by
// one, and n's style and color overrides shadow the inherited ones.
func (p Placement) Impose(n *Node) Placement {
	child := Placement{
		Offset: (p.Offset + n.Offset) * p.Scale,
		Scale:  n.YScale * p.Scale,
		Depth:  p.Depth + 1,
		Color:  p.Color,
		Scheme: p.Scheme,
	}
	if n.ColorOverride != nil {
		child.Color = n.ColorOverride
	}
	if n.StyleOverride != nil {
		child.Scheme = *n.StyleOverride
	}
	return child
}

// walk visits the subtree in preorder. nodeFn sees every node with the
// placement it inherited; eventFn sees every event with the context its
// parent imposes on children and the parent's own depth. Either callback
// may be nil; returning false stops the walk.
func (n *Node) walk(p Placement, nodeFn func(*Node, Placement) bool, eventFn func(*Event, Placement) bool) bool {
	if nodeFn != nil && !nodeFn(n, p) {
		return false
	}
	child := p.Impose(n)
	for i := range n.Children {
		v := n.Children[i]
		switch {
		case v.Event != nil:
			if eventFn != nil {
				ep := child
				ep.Depth = p.Depth
				if !eventFn(v.Event, ep) {
					return false
				}
			}
		case v.Node != nil:
			if !v.Node.walk(child, nodeFn, eventFn) {
				return false
			}
		}
	}
	return true
}

// WalkNodes visits every node in preorder, the node itself first, seeded
// with an identity placement. Returning false stops the walk early.
func (n *Node) WalkNodes(fn func(*Node, Placement) bool) {
	n.walk(Placement{Scale: 1}, fn, nil)
}

// WalkEvents visits every event leaf in preorder. Returning false stops the
// walk early.
func (n *Node) WalkEvents(fn func(*Event, Placement) bool) {
	n.walk(Placement{Scale: 1}, nil, fn)
}

// Nodes collects every node in preorder, the node itself first.
func (n *Node) Nodes() []*Node {
	var out []*Node
	n.WalkNodes(func(nd *Node, _ Placement) bool {
		out = append(out, nd)
		return true
	})
	return out
}

// Events collects every event leaf in preorder.
func (n *Node) Events() []*Event {
	var out []*Event
	n.WalkEvents(func(e *Event, _ Placement) bool {
		out = append(out, e)
		return true
	})
	return out
}

// Depths collects the depth of every node in preorder, the root at zero.
func (n *Node) Depths() []int {
	var out []int
	n.WalkNodes(func(_ *Node, p Placement) bool {
		out = append(out, p.Depth)
		return true
	})
	return out
}

// Transforms collects the inherited (offset, scale) pair of every node in
// preorder, seeded with the given root context.
func (n *Node) Transforms(offset, scale float64) []Transform {
	var out []Transform
	n.walk(Placement{Offset: offset, Scale: scale}, func(_ *Node, p Placement) bool {
		out = append(out, Transform{Offset: p.Offset, Scale: p.Scale})
		return true
	}, nil)
	return out
}

// IsEmpty reports whether the subtree holds no events.
func (n *Node) IsEmpty() bool {
	empty := true
	n.WalkEvents(func(*Event, Placement) bool {
		empty = false
		return false
	})
	return empty
}

// Range folds every event date into an epoch-second interval, starting from
// (MaxInt64, MinInt64). Check IsEmpty before trusting the result.
func (n *Node) Range() (int64, int64) {
	lo, hi := int64(math.MaxInt64), int64(math.MinInt64)
	n.WalkEvents(func(e *Event, _ Placement) bool {
		lo, hi = e.Datetime.ExpandRange(lo, hi)
		return true
	})
	return lo, hi
}

// Location reports the extent of the node's own events as fractions of the
// global range (lo, hi). ok is false when the subtree holds no events or
// the range has no width.
func (n *Node) Location(lo, hi int64) (start, end float64, ok bool) {
	if hi <= lo || n.IsEmpty() {
		return 0, 0, false
	}
	slo, shi := n.Range()
	span := float64(hi - lo)
	return float64(slo-lo) / span, float64(shi-lo) / span, true
}

// Line is a drawable horizontal rule: a normalized start and end along the
// global range, an optional tick interval, and a canvas-relative vertical
// offset.
type Line struct {
	Start    float64
	End      float64
	Interval *float64
	Y        float64
}

// Lines collects one Line per node that asks for one and has a defined
// location within (lo, hi). Y is the node's offset·scale·depth.
func (n *Node) Lines(lo, hi int64) []Line {
	var out []Line
	n.WalkNodes(func(nd *Node, p Placement) bool {
		if nd.Line == nil {
			return true
		}
		start, end, ok := nd.Location(lo, hi)
		if !ok {
			return true
		}
		out = append(out, Line{
			Start:    start,
			End:      end,
			Interval: nd.Line.Interval,
			Y:        p.Offset * p.Scale * float64(p.Depth),
		})
		return true
	})
	return out
}

// Print renders the subtree as indented text, two spaces per depth level.
// Verbose adds node transforms and event descriptions.
func (n *Node) Print(depth int, verbose bool) string {
	var b strings.Builder
	n.printTo(&b, depth, verbose)
	return b.String()
}

func (n *Node) printTo(b *strings.Builder, depth int, verbose bool) {
	pad := strings.Repeat("  ", depth)
	name := "(No name)"
	if n.Name != nil {
		name = *n.Name
	}
	fmt.Fprintf(b, "%sNode: %s\n", pad, name)
	if verbose {
		fmt.Fprintf(b, "%s  Offset:  %v\n", pad, n.Offset)
		fmt.Fprintf(b, "%s  Scaling: %v\n", pad, n.YScale)
		if n.Line != nil {
			if n.Line.Interval != nil {
				fmt.Fprintf(b, "%s  Line: ticks every %v\n", pad, *n.Line.Interval)
			} else {
				fmt.Fprintf(b, "%s  Line: yes\n", pad)
			}
		}
	}
	for _, v := range n.Children {
		switch {
		case v.Event != nil:
			v.Event.printTo(b, depth+1, verbose)
		case v.Node != nil:
			v.Node.printTo(b, depth+1, verbose)
		}
	}
}

// UnmarshalJSON fills the defaults the on-disk form may omit: a unit
// y_scale and empty children and graphs.
func (n *Node) UnmarshalJSON(data []byte) error {
	type alias Node
	aux := alias{YScale: 1}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Children == nil {
		aux.Children = []Value{}
	}
	if aux.Graphs == nil {
		aux.Graphs = []Graph{}
	}
	*n = Node(aux)
	return nil
}

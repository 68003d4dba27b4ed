package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Query is a transient view of one tree element. Exactly one field is
// non-nil.
type Query struct {
	Node  *Node
	Event *Event
}

// Kind reports which kind of element the query resolved to.
func (q Query) Kind() Kind {
	if q.Event != nil {
		return KindEvent
	}
	return KindNode
}

// PathFail reports a path that does not resolve. Remaining counts the steps
// that were never consumed, the failing step included.
type PathFail struct {
	Path      []int
	Remaining int
}

func (e *PathFail) Error() string {
	return fmt.Sprintf("path %v does not resolve (%d steps remaining)", e.Path, e.Remaining)
}

// PathParseError reports a path segment that is not an unsigned integer.
type PathParseError struct {
	Segment string
	Err     error
}

func (e *PathParseError) Error() string {
	return fmt.Sprintf("bad path segment %q: %v", e.Segment, e.Err)
}

func (e *PathParseError) Unwrap() error { return e.Err }

// ParsePath reads a colon-separated list of one-based indices. Whitespace
// around segments is ignored; an empty or blank string is the root path.
func ParsePath(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return []int{}, nil
	}
	parts := strings.Split(s, ":")
	path := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		v, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return nil, &PathParseError{Segment: part, Err: err}
		}
		path = append(path, int(v))
	}
	return path, nil
}

// FormatPath renders indices in the colon form ParsePath reads.
func FormatPath(path []int) string {
	parts := make([]string, len(path))
	for i, v := range path {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ":")
}

// WalkEventPaths visits every event in the subtree in document order along
// with the one-based child-index path that Query would resolve to it.
// Returning false stops the walk.
func (n *Node) WalkEventPaths(fn func(path []int, e *Event) bool) {
	n.walkEventPaths(nil, fn)
}

func (n *Node) walkEventPaths(prefix []int, fn func([]int, *Event) bool) bool {
	for i, v := range n.Children {
		path := append(prefix[:len(prefix):len(prefix)], i+1)
		switch {
		case v.Event != nil:
			if !fn(path, v.Event) {
				return false
			}
		case v.Node != nil:
			if !v.Node.walkEventPaths(path, fn) {
				return false
			}
		}
	}
	return true
}

// Query resolves a one-based path against the subtree. The empty path is
// the node itself; every step but the last must land on a node, the last
// may land on a node or an event.
func (n *Node) Query(path []int) (Query, error) {
	cur := n
	for k, idx := range path {
		if idx < 1 || idx > len(cur.Children) {
			return Query{}, &PathFail{Path: path, Remaining: len(path) - k}
		}
		v := cur.Children[idx-1]
		switch {
		case v.Node != nil:
			cur = v.Node
		case v.Event != nil:
			if k == len(path)-1 {
				return Query{Event: v.Event}, nil
			}
			return Query{}, &PathFail{Path: path, Remaining: len(path) - k - 1}
		}
	}
	return Query{Node: cur}, nil
}

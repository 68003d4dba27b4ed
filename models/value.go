package models

import (
	"encoding/json"
	"fmt"
)

// Kind discriminates the two shapes a tree element can take.
type Kind int

// The two element kinds.
const (
	KindNode Kind = iota
	KindEvent
)

// String returns "Node" or "Event".
func (k Kind) String() string {
	if k == KindEvent {
		return "Event"
	}
	return "Node"
}

// Tags written to the "type" field of serialized children.
const (
	typeTagEvent = "Event"
	typeTagNode  = "Node"
)

// Value is one child of a Node: either an Event leaf or a nested Node.
// Exactly one field is non-nil.
type Value struct {
	Event *Event
	Node  *Node
}

// Kind reports which side of the union is populated.
func (v Value) Kind() Kind {
	if v.Event != nil {
		return KindEvent
	}
	return KindNode
}

// MarshalJSON writes the populated side with its "type" tag.
func (v Value) MarshalJSON() ([]byte, error) {
	switch {
	case v.Event != nil:
		return json.Marshal(struct {
			Type string `json:"type"`
			*Event
		}{typeTagEvent, v.Event})
	case v.Node != nil:
		return json.Marshal(struct {
			Type string `json:"type"`
			*Node
		}{typeTagNode, v.Node})
	}
	return nil, fmt.Errorf("value holds neither an event nor a node")
}

// UnmarshalJSON picks the side named by the "type" tag.
func (v *Value) UnmarshalJSON(data []byte) error {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	switch probe.Type {
	case typeTagEvent:
		e := &Event{}
		if err := json.Unmarshal(data, e); err != nil {
			return err
		}
		*v = Value{Event: e}
	case typeTagNode:
		n := &Node{}
		if err := json.Unmarshal(data, n); err != nil {
			return err
		}
		*v = Value{Node: n}
	default:
		return fmt.Errorf("unknown value type %q", probe.Type)
	}
	return nil
}

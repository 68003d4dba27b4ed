// Package edit implements the command language used to modify timeline
// elements in place: parsing one-line commands and applying them to the
// node or event a path query resolved to.
package edit

import (
	"errors"
	"fmt"

	"github.com/theHooloovoo/Saga/models"
)

// Command is one parsed edit instruction. Eval applies it to the queried
// element, returning a NotApplicableError when the element is the wrong
// kind for the command.
type Command interface {
	fmt.Stringer
	Eval(q models.Query) error
}

// NotApplicableError reports a command applied to the wrong element kind.
type NotApplicableError struct {
	Kind    models.Kind
	Command Command
}

func (e *NotApplicableError) Error() string {
	return fmt.Sprintf("command %q does not apply to a %s", e.Command, e.Kind)
}

// ErrEditorRequired marks description edits given without text. They are
// reserved for an external text editor, which nothing launches yet.
var ErrEditorRequired = errors.New("editing a description without text requires an external editor")

// IsExit reports whether cmd is the exit directive.
func IsExit(cmd Command) bool {
	_, ok := cmd.(Exit)
	return ok
}

// IsHelp reports whether cmd is the help directive.
func IsHelp(cmd Command) bool {
	_, ok := cmd.(Help)
	return ok
}

// Exit ends an editor session. It is a directive for the session loop, not
// an edit, so evaluating it is always an error.
type Exit struct{}

func (Exit) String() string { return "exit" }

// Eval implements Command.
func (c Exit) Eval(q models.Query) error {
	return &NotApplicableError{Kind: q.Kind(), Command: c}
}

// Help asks the session loop for the command table. Like Exit it never
// applies to an element.
type Help struct{}

func (Help) String() string { return "help" }

// Eval implements Command.
func (c Help) Eval(q models.Query) error {
	return &NotApplicableError{Kind: q.Kind(), Command: c}
}

// NameSub clears a node's name.
type NameSub struct{}

func (NameSub) String() string { return "-name" }

// Eval implements Command.
func (c NameSub) Eval(q models.Query) error {
	if q.Node == nil {
		return &NotApplicableError{Kind: q.Kind(), Command: c}
	}
	q.Node.SetName(nil)
	return nil
}

// NameEdit sets an element's name. A nil Name clears a node's name; events
// always carry one, so a nil Name does not apply to them.
type NameEdit struct {
	Name *string
}

func (NameEdit) String() string { return "name" }

// Eval implements Command.
func (c NameEdit) Eval(q models.Query) error {
	if q.Node != nil {
		q.Node.SetName(c.Name)
		return nil
	}
	if c.Name == nil {
		return &NotApplicableError{Kind: q.Kind(), Command: c}
	}
	q.Event.SetName(*c.Name)
	return nil
}

// DescAdd appends a description line to an event.
type DescAdd struct {
	Text *string
}

func (DescAdd) String() string { return "+desc" }

// Eval implements Command.
func (c DescAdd) Eval(q models.Query) error {
	if q.Event == nil {
		return &NotApplicableError{Kind: q.Kind(), Command: c}
	}
	if c.Text == nil {
		return ErrEditorRequired
	}
	q.Event.AddDescription(*c.Text)
	return nil
}

// DescSub deletes an event's description by zero-based index.
type DescSub struct {
	Index int
}

func (DescSub) String() string { return "-desc" }

// Eval implements Command.
func (c DescSub) Eval(q models.Query) error {
	if q.Event == nil {
		return &NotApplicableError{Kind: q.Kind(), Command: c}
	}
	return q.Event.DeleteDescription(c.Index)
}

// DescEdit replaces an event's description by zero-based index.
type DescEdit struct {
	Index int
	Text  *string
}

func (DescEdit) String() string { return "desc" }

// Eval implements Command.
func (c DescEdit) Eval(q models.Query) error {
	if q.Event == nil {
		return &NotApplicableError{Kind: q.Kind(), Command: c}
	}
	if c.Text == nil {
		return ErrEditorRequired
	}
	return q.Event.ChangeDescription(c.Index, *c.Text)
}

// LineEdit replaces a node's line rule. A nil Rule removes the line.
type LineEdit struct {
	Rule *models.LineRule
}

func (c LineEdit) String() string {
	if c.Rule == nil {
		return "-line"
	}
	return "line"
}

// Eval implements Command.
func (c LineEdit) Eval(q models.Query) error {
	if q.Node == nil {
		return &NotApplicableError{Kind: q.Kind(), Command: c}
	}
	q.Node.SetLine(c.Rule)
	return nil
}

// Offset sets a node's vertical offset.
type Offset struct {
	Value float64
}

func (Offset) String() string { return "offset" }

// Eval implements Command.
func (c Offset) Eval(q models.Query) error {
	if q.Node == nil {
		return &NotApplicableError{Kind: q.Kind(), Command: c}
	}
	q.Node.SetOffset(c.Value)
	return nil
}

// Scale sets a node's vertical scale.
type Scale struct {
	Value float64
}

func (Scale) String() string { return "scale" }

// Eval implements Command.
func (c Scale) Eval(q models.Query) error {
	if q.Node == nil {
		return &NotApplicableError{Kind: q.Kind(), Command: c}
	}
	q.Node.SetScale(c.Value)
	return nil
}

// DateEdit replaces an event's date.
type DateEdit struct {
	When models.Date
}

func (DateEdit) String() string { return "date" }

// Eval implements Command.
func (c DateEdit) Eval(q models.Query) error {
	if q.Event == nil {
		return &NotApplicableError{Kind: q.Kind(), Command: c}
	}
	q.Event.SetDates(c.When)
	return nil
}

// HelpText lists the edit commands for the help directive.
func HelpText() string {
	return `Commands:
  exit             leave the editor, saving the document
  help             show this table
  name [TEXT]      set the element's name; without TEXT, clear a node's name
  -name            clear a node's name
  +desc [TEXT]     append a description to an event
  desc N [TEXT]    replace description N of an event (zero based)
  -desc N          delete description N of an event (zero based)
  line [X]         give a node a line, optionally with tick interval X
  -line            remove a node's line
  offset X         set a node's vertical offset
  -offset          reset a node's vertical offset to 0
  scale X          set a node's vertical scale
  -scale           reset a node's vertical scale to 1
  date WHEN        set an event's date: 26/12/1997 14:30, or a range
                   joined by "-": 1/1/1990 0:0 - 1/1/1991 0:0
`
}

package edit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theHooloovoo/Saga/models"
)

// ParseErrorKind names the ways a command line can fail to parse.
type ParseErrorKind int

// The parse failure kinds.
const (
	MissingCommand ParseErrorKind = iota
	MissingArgument
	ExtraArgument
	UnknownCommand
	NotAFloat
	NotAInt
	NotADate
)

// ParseError reports a command line that does not parse. Head is the
// command word with its modifier stripped; Rest holds unconsumed input.
type ParseError struct {
	Kind ParseErrorKind
	Head string
	Rest string
	Err  error
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case MissingCommand:
		return "missing command"
	case MissingArgument:
		return "missing argument"
	case ExtraArgument:
		return fmt.Sprintf("extra argument after %q: %q", e.Head, e.Rest)
	case UnknownCommand:
		if e.Rest != "" {
			return fmt.Sprintf("unknown command %q %q", e.Head, e.Rest)
		}
		return fmt.Sprintf("unknown command %q", e.Head)
	case NotAFloat:
		return fmt.Sprintf("not a float: %v", e.Err)
	case NotAInt:
		return fmt.Sprintf("not an integer: %v", e.Err)
	case NotADate:
		return fmt.Sprintf("%v", e.Err)
	}
	return "bad command"
}

func (e *ParseError) Unwrap() error { return e.Err }

// modifier is the optional sigil ahead of a command word.
type modifier int

const (
	modEdit modifier = iota
	modAdd
	modSub
)

// splitMod strips a leading + or - and reports which it was.
func splitMod(word string) (modifier, string) {
	if rest, ok := strings.CutPrefix(word, "+"); ok {
		return modAdd, rest
	}
	if rest, ok := strings.CutPrefix(word, "-"); ok {
		return modSub, rest
	}
	return modEdit, word
}

// tokenStream hands out whitespace-split tokens one at a time.
type tokenStream struct {
	tokens []string
}

func (t *tokenStream) next() (string, bool) {
	if len(t.tokens) == 0 {
		return "", false
	}
	head := t.tokens[0]
	t.tokens = t.tokens[1:]
	return head, true
}

// tail consumes the remaining tokens joined by single spaces, nil when the
// stream is already finished.
func (t *tokenStream) tail() *string {
	if len(t.tokens) == 0 {
		return nil
	}
	s := strings.Join(t.tokens, " ")
	t.tokens = nil
	return &s
}

func (t *tokenStream) empty() bool {
	return len(t.tokens) == 0
}

// nextFloat parses the next token as a float, nil when the stream is
// finished.
func (t *tokenStream) nextFloat() (*float64, error) {
	tok, ok := t.next()
	if !ok {
		return nil, nil
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return nil, &ParseError{Kind: NotAFloat, Err: err}
	}
	return &v, nil
}

// nextInt parses the next token as an unsigned integer, failing when the
// stream is finished.
func (t *tokenStream) nextInt() (int, error) {
	tok, ok := t.next()
	if !ok {
		return 0, &ParseError{Kind: MissingArgument}
	}
	v, err := strconv.ParseUint(tok, 10, 32)
	if err != nil {
		return 0, &ParseError{Kind: NotAInt, Err: err}
	}
	return int(v), nil
}

// Parse reads one command line. The first word, less an optional + or -
// modifier, selects the command; scalar arguments are single tokens and
// text arguments swallow the rest of the line. Leftover tokens after a
// complete command are an ExtraArgument error.
func Parse(s string) (Command, error) {
	stream := &tokenStream{tokens: strings.Fields(s)}
	first, ok := stream.next()
	if !ok {
		return nil, &ParseError{Kind: MissingCommand}
	}
	mod, head := splitMod(first)

	var cmd Command
	switch {
	case head == "exit":
		cmd = Exit{}
	case head == "help":
		cmd = Help{}
	case head == "date" && mod == modEdit:
		text := stream.tail()
		if text == nil {
			return nil, &ParseError{Kind: MissingArgument}
		}
		when, err := models.ParseDate(*text)
		if err != nil {
			return nil, &ParseError{Kind: NotADate, Err: err}
		}
		cmd = DateEdit{When: when}
	case head == "name" && mod == modSub:
		cmd = NameSub{}
	case head == "name":
		cmd = NameEdit{Name: stream.tail()}
	case head == "desc" && mod == modSub:
		n, err := stream.nextInt()
		if err != nil {
			return nil, err
		}
		cmd = DescSub{Index: n}
	case head == "desc" && mod == modAdd:
		cmd = DescAdd{Text: stream.tail()}
	case head == "desc":
		n, err := stream.nextInt()
		if err != nil {
			return nil, err
		}
		cmd = DescEdit{Index: n, Text: stream.tail()}
	case head == "line" && mod == modSub:
		cmd = LineEdit{}
	case head == "line":
		interval, err := stream.nextFloat()
		if err != nil {
			return nil, err
		}
		cmd = LineEdit{Rule: &models.LineRule{Interval: interval}}
	case head == "offset" && mod == modSub:
		cmd = Offset{Value: 0}
	case head == "offset":
		v, err := stream.nextFloat()
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, &ParseError{Kind: MissingArgument}
		}
		cmd = Offset{Value: *v}
	case head == "scale" && mod == modSub:
		cmd = Scale{Value: 1}
	case head == "scale":
		v, err := stream.nextFloat()
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, &ParseError{Kind: MissingArgument}
		}
		cmd = Scale{Value: *v}
	default:
		rest := stream.tail()
		pe := &ParseError{Kind: UnknownCommand, Head: head}
		if rest != nil {
			pe.Rest = *rest
		}
		return nil, pe
	}

	if !stream.empty() {
		rest := stream.tail()
		return nil, &ParseError{Kind: ExtraArgument, Head: head, Rest: *rest}
	}
	return cmd, nil
}

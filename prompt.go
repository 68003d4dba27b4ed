package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/theHooloovoo/Saga/edit"
	"github.com/theHooloovoo/Saga/models"
)

// prompter reads line-oriented answers from an input stream.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

// line prints a prompt and reads one line, trimmed of surrounding space.
// io.EOF reports that the input is exhausted.
func (p *prompter) line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// ask poses a named question in the "Name > " form.
func (p *prompter) ask(label string) (string, error) {
	return p.line(label + " > ")
}

// promptEvent collects a new event interactively: a name, a date, then
// descriptions for as long as the user keeps answering yes. Running out of
// input during the description loop keeps what was gathered so far.
func promptEvent(in io.Reader, out io.Writer) (*models.Event, error) {
	p := newPrompter(in, out)
	name, err := p.ask("Name")
	if err != nil {
		return nil, err
	}
	text, err := p.ask("Date")
	if err != nil {
		return nil, err
	}
	when, err := models.ParseDate(text)
	if err != nil {
		return nil, err
	}
	ev := models.NewEvent(name, when)
	for {
		answer, err := p.ask("Description [y/N]")
		if err != nil || !strings.HasPrefix(strings.ToLower(answer), "y") {
			break
		}
		desc, err := p.ask("")
		if err != nil {
			break
		}
		ev.AddDescription(desc)
	}
	return ev, nil
}

// runEditor drives the interactive command loop against one resolved target.
// Parse and eval failures are reported and the loop continues; exit or end
// of input returns control to the caller, which saves the document.
func runEditor(in io.Reader, out, errOut io.Writer, q models.Query) {
	p := newPrompter(in, out)
	for {
		input, err := p.line("> ")
		if err != nil {
			return
		}
		cmd, err := edit.Parse(input)
		if err != nil {
			fmt.Fprintln(errOut, err)
			continue
		}
		if edit.IsExit(cmd) {
			return
		}
		if edit.IsHelp(cmd) {
			fmt.Fprint(out, edit.HelpText())
			continue
		}
		if err := cmd.Eval(q); err != nil {
			fmt.Fprintln(errOut, err)
		}
	}
}

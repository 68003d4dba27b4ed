package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theHooloovoo/Saga/models"
)

// runCLI executes the command tree against args with a scripted stdin,
// capturing stdout.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)
	err := cmd.Execute()
	return out.String(), err
}

func mustParseDate(t *testing.T, s string) models.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	require.NoError(t, err)
	return d
}

// missionDocument is a small tree with an event at path 1 and a nested one
// at path 2:1.
func missionDocument(t *testing.T) *models.Document {
	t.Helper()
	doc := models.Blank()
	doc.Data.Push(models.Value{Event: models.NewEvent("alpha raid", mustParseDate(t, "01/01/2000 00:00"))})
	inner := models.NewNode("missions")
	inner.Push(models.Value{Event: models.NewEvent("beta alpha", mustParseDate(t, "01/06/2000 00:00"))})
	doc.Data.Push(models.Value{Node: inner})
	return doc
}

func seedDocument(t *testing.T, fp string, doc *models.Document) {
	t.Helper()
	require.NoError(t, writeDocument(fp, doc))
}

func TestNewCommand(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "timeline.json")

	_, err := runCLI(t, "", "new", fp)
	require.NoError(t, err)

	want, err := models.Blank().Encode()
	require.NoError(t, err)
	data, err := os.ReadFile(fp)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(data))
}

func TestNewCommandArgValidation(t *testing.T) {
	_, err := runCLI(t, "", "new")
	assert.Error(t, err)
}

func TestAddCommand(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "timeline.json")
	seedDocument(t, fp, models.Blank())

	out, err := runCLI(t, "first light\n01/01/2000 12:00\nn\n", "add", fp, "")
	require.NoError(t, err)
	assert.Equal(t, "Name > Date > Description [y/N] > ", out)

	doc, err := readDocument(fp)
	require.NoError(t, err)
	require.Len(t, doc.Data.Children, 1)
	ev := doc.Data.Children[0].Event
	require.NotNil(t, ev)
	assert.Equal(t, "first light", ev.Name)
	assert.Equal(t, time.Date(2000, time.January, 1, 12, 0, 0, 0, time.Local), ev.Datetime.Start)
}

func TestAddCommandNestedTarget(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "timeline.json")
	seedDocument(t, fp, missionDocument(t))

	_, err := runCLI(t, "gamma\n02/06/2000 00:00\nn\n", "add", fp, "2")
	require.NoError(t, err)

	doc, err := readDocument(fp)
	require.NoError(t, err)
	inner := doc.Data.Children[1].Node
	require.NotNil(t, inner)
	require.Len(t, inner.Children, 2)
	assert.Equal(t, "gamma", inner.Children[1].Event.Name)
}

func TestAddCommandRejectsEventTarget(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "timeline.json")
	seedDocument(t, fp, missionDocument(t))

	_, err := runCLI(t, "", "add", fp, "1")
	assert.EqualError(t, err, "cannot add an event under an event")
}

func TestEditCommand(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "timeline.json")
	seedDocument(t, fp, missionDocument(t))

	_, err := runCLI(t, "", "edit", fp, "1", "name", "night", "raid")
	require.NoError(t, err)

	doc, err := readDocument(fp)
	require.NoError(t, err)
	assert.Equal(t, "night raid", doc.Data.Children[0].Event.Name)
}

func TestEditCommandDate(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "timeline.json")
	seedDocument(t, fp, missionDocument(t))

	_, err := runCLI(t, "", "edit", fp, "1", "date", "02/01/2000", "08:30")
	require.NoError(t, err)

	doc, err := readDocument(fp)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2000, time.January, 2, 8, 30, 0, 0, time.Local),
		doc.Data.Children[0].Event.Datetime.Start)
}

func TestEditCommandParseErrorLeavesFileAlone(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "timeline.json")
	seedDocument(t, fp, missionDocument(t))
	before, err := os.ReadFile(fp)
	require.NoError(t, err)

	_, err = runCLI(t, "", "edit", fp, "1", "bogus")
	assert.Error(t, err)

	after, err := os.ReadFile(fp)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestEditorCommand(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "timeline.json")
	seedDocument(t, fp, missionDocument(t))

	_, err := runCLI(t, "name captain\nexit\n", "editor", fp, "1")
	require.NoError(t, err)

	doc, err := readDocument(fp)
	require.NoError(t, err)
	assert.Equal(t, "captain", doc.Data.Children[0].Event.Name)
}

func TestCatCommand(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.json")
	b := filepath.Join(dir, "b.json")
	dest := filepath.Join(dir, "all.json")
	seedDocument(t, a, missionDocument(t))
	seedDocument(t, b, missionDocument(t))

	_, err := runCLI(t, "", "cat", a, b, dest)
	require.NoError(t, err)

	doc, err := readDocument(dest)
	require.NoError(t, err)
	assert.Len(t, doc.Data.Children, 4)
}

func TestCatCommandMissingInput(t *testing.T) {
	dir := t.TempDir()
	_, err := runCLI(t, "", "cat", filepath.Join(dir, "missing.json"), filepath.Join(dir, "all.json"))
	assert.ErrorContains(t, err, "reading")
}

func TestGrepCommand(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "timeline.json")
	seedDocument(t, fp, missionDocument(t))

	out, err := runCLI(t, "", "grep", "alpha", fp)
	require.NoError(t, err)
	want := fmt.Sprintf("%s:1: Event: alpha raid, [01/01/2000 00:00]\n", fp) +
		fmt.Sprintf("%s:2:1: Event: beta alpha, [01/06/2000 00:00]\n", fp)
	assert.Equal(t, want, out)

	out, err = runCLI(t, "", "grep", "raid", fp)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%s:1: Event: alpha raid, [01/01/2000 00:00]\n", fp), out)

	out, err = runCLI(t, "", "grep", "nothing matches this", fp)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestGrepCommandMissingFiles(t *testing.T) {
	dir := t.TempDir()
	fp := filepath.Join(dir, "timeline.json")
	seedDocument(t, fp, missionDocument(t))

	_, err := runCLI(t, "", "grep", "alpha", filepath.Join(dir, "missing.json"))
	assert.EqualError(t, err, "1 of 1 files failed")

	// Good files are still searched.
	out, err := runCLI(t, "", "grep", "raid", filepath.Join(dir, "missing.json"), fp)
	assert.EqualError(t, err, "1 of 2 files failed")
	assert.Contains(t, out, "alpha raid")
}

func TestImportCommand(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "calendar.ics")
	dest := filepath.Join(dir, "timeline.json")
	payload := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//saga//test//EN",
		"BEGIN:VEVENT",
		"UID:b",
		"DTSTAMP:20000101T000000Z",
		"SUMMARY:second",
		"DTSTART:20000601T090000Z",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:a",
		"DTSTAMP:20000101T000000Z",
		"SUMMARY:first",
		"DTSTART:20000101T090000Z",
		"END:VEVENT",
		"END:VCALENDAR",
	}, "\r\n") + "\r\n"
	require.NoError(t, os.WriteFile(src, []byte(payload), 0644))

	_, err := runCLI(t, "", "import", src, dest)
	require.NoError(t, err)

	doc, err := readDocument(dest)
	require.NoError(t, err)
	require.Len(t, doc.Data.Children, 2)
	assert.Equal(t, "first", doc.Data.Children[0].Event.Name)
	assert.Equal(t, "second", doc.Data.Children[1].Event.Name)
}

func TestImportCommandMissingSource(t *testing.T) {
	dir := t.TempDir()
	_, err := runCLI(t, "", "import", filepath.Join(dir, "missing.ics"), filepath.Join(dir, "out.json"))
	assert.ErrorContains(t, err, "reading")
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	fp := filepath.Join(dir, "timeline.json")
	seedDocument(t, fp, missionDocument(t))

	_, err := runCLI(t, "", "render", fp)
	require.NoError(t, err)

	svg, err := os.ReadFile(filepath.Join(dir, "timeline.svg"))
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")
	assert.Contains(t, string(svg), "</svg>")
}

func TestRenderCommandStyle(t *testing.T) {
	dir := t.TempDir()
	fp := filepath.Join(dir, "timeline.json")
	seedDocument(t, fp, missionDocument(t))
	stylePath := filepath.Join(dir, "style.yaml")
	require.NoError(t, os.WriteFile(stylePath, []byte("background: \"#123456\"\n"), 0644))

	_, err := runCLI(t, "", "render", "--style", stylePath, fp)
	require.NoError(t, err)

	svg, err := os.ReadFile(filepath.Join(dir, "timeline.svg"))
	require.NoError(t, err)
	assert.Contains(t, string(svg), `fill="#123456"`)
}

func TestRenderCommandErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := runCLI(t, "", "render", filepath.Join(dir, "missing.json"))
	assert.EqualError(t, err, "1 of 1 files failed")

	fp := filepath.Join(dir, "timeline.json")
	seedDocument(t, fp, missionDocument(t))
	_, err = runCLI(t, "", "render", "--style", filepath.Join(dir, "missing.yaml"), fp)
	assert.ErrorContains(t, err, "reading style")
}

func TestPrintCommand(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "timeline.json")
	doc := models.Blank()
	doc.Data.Push(models.Value{Event: models.NewEvent("first light", mustParseDate(t, "01/01/2000 12:00"))})
	seedDocument(t, fp, doc)

	out, err := runCLI(t, "", "print", fp)
	require.NoError(t, err)
	want := fmt.Sprintf("\n%s\nNode: (No name)\n  Event: first light, [01/01/2000 12:00]\n", fp)
	assert.Equal(t, want, out)
}

func TestPrintCommandVerbose(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "timeline.json")
	doc := models.Blank()
	ev := models.NewEvent("first light", mustParseDate(t, "01/01/2000 12:00"))
	ev.AddDescription("a note")
	doc.Data.Push(models.Value{Event: ev})
	seedDocument(t, fp, doc)

	out, err := runCLI(t, "", "print", "-v", fp)
	require.NoError(t, err)
	want := fmt.Sprintf("\n%s\n", fp) +
		"Node: (No name)\n" +
		"  Offset:  0\n" +
		"  Scaling: 1\n" +
		"  Event: first light, [01/01/2000 12:00]\n" +
		"    - a note\n"
	assert.Equal(t, want, out)
}

func TestPrintCommandMissingFile(t *testing.T) {
	_, err := runCLI(t, "", "print", filepath.Join(t.TempDir(), "missing.json"))
	assert.EqualError(t, err, "1 of 1 files failed")
}

func TestRootCommandWiring(t *testing.T) {
	root := newRootCmd()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"new", "add", "edit", "editor", "grep", "cat", "import", "render", "print", "serve"} {
		assert.Contains(t, names, want)
	}

	for _, c := range root.Commands() {
		if c.Name() == "serve" {
			flag := c.Flags().Lookup("port")
			require.NotNil(t, flag)
			assert.Equal(t, "8080", flag.DefValue)
		}
	}
}

func TestReadDocumentErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := readDocument(filepath.Join(dir, "missing.json"))
	assert.ErrorContains(t, err, "reading")

	fp := filepath.Join(dir, "garbage.json")
	require.NoError(t, os.WriteFile(fp, []byte("not json"), 0644))
	_, err = readDocument(fp)
	assert.ErrorContains(t, err, "parsing")
}

package edit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theHooloovoo/Saga/models"
)

func strPtr(s string) *string { return &s }

func TestParseCommands(t *testing.T) {
	ticked := 5.0
	voyage, err := models.ParseDate("1/1/1990 0:0 - 1/1/1991 0:0")
	require.NoError(t, err)
	instant, err := models.ParseDate("26/12/1997 14:30")
	require.NoError(t, err)

	cases := []struct {
		in   string
		want Command
	}{
		{"exit", Exit{}},
		{"+exit", Exit{}},
		{"-exit", Exit{}},
		{"help", Help{}},
		{"+help", Help{}},
		{"-help", Help{}},
		{"name", NameEdit{}},
		{"name hello", NameEdit{Name: strPtr("hello")}},
		{"name hello world", NameEdit{Name: strPtr("hello world")}},
		{"+name hello", NameEdit{Name: strPtr("hello")}},
		{"-name", NameSub{}},
		{"+desc", DescAdd{}},
		{"+desc Lorem Ipsum Dolor", DescAdd{Text: strPtr("Lorem Ipsum Dolor")}},
		{"-desc 2", DescSub{Index: 2}},
		{"desc 5", DescEdit{Index: 5}},
		{"desc 5 replacement text", DescEdit{Index: 5, Text: strPtr("replacement text")}},
		{"line", LineEdit{Rule: &models.LineRule{}}},
		{"line 5", LineEdit{Rule: &models.LineRule{Interval: &ticked}}},
		{"+line", LineEdit{Rule: &models.LineRule{}}},
		{"+line 5", LineEdit{Rule: &models.LineRule{Interval: &ticked}}},
		{"-line", LineEdit{}},
		{"offset 2.0", Offset{Value: 2}},
		{"+offset 2.0", Offset{Value: 2}},
		{"-offset", Offset{Value: 0}},
		{"scale 0.5", Scale{Value: 0.5}},
		{"+scale 0.5", Scale{Value: 0.5}},
		{"-scale", Scale{Value: 1}},
		{"date 26/12/1997 14:30", DateEdit{When: instant}},
		{"date 1/1/1990 0:0 - 1/1/1991 0:0", DateEdit{When: voyage}},
		{"  name   spaced   out  ", NameEdit{Name: strPtr("spaced out")}},
	}
	for _, c := range cases {
		got, err := Parse(c.in)
		require.NoError(t, err, "input %q", c.in)
		assert.Equal(t, c.want, got, "input %q", c.in)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		in   string
		kind ParseErrorKind
	}{
		{"", MissingCommand},
		{"   ", MissingCommand},
		{"booty buttcheeks", UnknownCommand},
		{"+date 26/12/1997 14:30", UnknownCommand},
		{"-date", UnknownCommand},
		{"exit world", ExtraArgument},
		{"help world", ExtraArgument},
		{"-name hello", ExtraArgument},
		{"+line 5 4", ExtraArgument},
		{"-line 5", ExtraArgument},
		{"offset 1 2", ExtraArgument},
		{"-offset 3", ExtraArgument},
		{"-desc 1 extra", ExtraArgument},
		{"+line hello", NotAFloat},
		{"offset fast", NotAFloat},
		{"scale wide", NotAFloat},
		{"desc 3.14", NotAInt},
		{"desc -1", NotAInt},
		{"-desc many", NotAInt},
		{"offset", MissingArgument},
		{"+offset", MissingArgument},
		{"scale", MissingArgument},
		{"desc", MissingArgument},
		{"-desc", MissingArgument},
		{"date", MissingArgument},
		{"date snails", NotADate},
	}
	for _, c := range cases {
		_, err := Parse(c.in)
		require.Error(t, err, "input %q", c.in)
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr, "input %q", c.in)
		assert.Equal(t, c.kind, parseErr.Kind, "input %q", c.in)
	}
}

func TestParseErrorFields(t *testing.T) {
	_, err := Parse("booty buttcheeks")
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "booty", parseErr.Head)
	assert.Equal(t, "buttcheeks", parseErr.Rest)
	assert.Equal(t, `unknown command "booty" "buttcheeks"`, parseErr.Error())

	// The head is reported without its modifier.
	_, err = Parse("+line 5 4")
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "line", parseErr.Head)
	assert.Equal(t, "4", parseErr.Rest)
	assert.Equal(t, `extra argument after "line": "4"`, parseErr.Error())

	_, err = Parse("+line hello")
	require.ErrorAs(t, err, &parseErr)
	assert.Error(t, parseErr.Unwrap())

	// A date that fails to parse carries the date error.
	_, err = Parse("date snails")
	require.ErrorAs(t, err, &parseErr)
	var dateErr *models.DateParseError
	assert.ErrorAs(t, parseErr, &dateErr)
}

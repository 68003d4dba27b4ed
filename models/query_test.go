package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	cases := []struct {
		in   string
		want []int
	}{
		{"", []int{}},
		{"   ", []int{}},
		{"1", []int{1}},
		{"1:3:2", []int{1, 3, 2}},
		{" 1 : 3 : 2 ", []int{1, 3, 2}},
		{"0", []int{0}},
	}
	for _, c := range cases {
		got, err := ParsePath(c.in)
		require.NoError(t, err, "input %q", c.in)
		assert.Equal(t, c.want, got, "input %q", c.in)
	}
}

func TestParsePathErrors(t *testing.T) {
	for _, in := range []string{"a", "1:b", "1::2", "-1", "1.5", "1:2:"} {
		_, err := ParsePath(in)
		require.Error(t, err, "input %q", in)
		var parseErr *PathParseError
		assert.ErrorAs(t, err, &parseErr, "input %q", in)
	}
}

func TestFormatPath(t *testing.T) {
	assert.Equal(t, "", FormatPath([]int{}))
	assert.Equal(t, "7", FormatPath([]int{7}))
	assert.Equal(t, "1:3:2", FormatPath([]int{1, 3, 2}))

	// FormatPath output reads back as the same path.
	path := []int{4, 1, 2}
	back, err := ParsePath(FormatPath(path))
	require.NoError(t, err)
	assert.Equal(t, path, back)
}

func TestPathFailMessage(t *testing.T) {
	err := &PathFail{Path: []int{1, 2, 3}, Remaining: 2}
	assert.Equal(t, "path [1 2 3] does not resolve (2 steps remaining)", err.Error())
}

package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/jstool/internal/errors"
	"github.com/mcncl/jstool/internal/models"
)

func TestParse_SimpleObject(t *testing.T) {
	doc, err := Parse(strings.NewReader(`{"name": "John Doe", "age": 30, "isStudent": false, "city": null}`))
	require.NoError(t, err)
	require.True(t, doc.IsObject())

	assert.Equal(t, `{"name":"John Doe","age":30,"isStudent":false,"city":null}`, doc.JSON())
}

func TestParse_SimpleArray(t *testing.T) {
	doc, err := Parse(strings.NewReader(`[1, "test", true, null, 3.14]`))
	require.NoError(t, err)
	require.True(t, doc.IsArray())
	assert.Equal(t, 5, doc.Len())
	assert.Equal(t, "integer", doc.Elem(0).TypeName())
	assert.Equal(t, "number", doc.Elem(4).TypeName())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		sentinel error
	}{
		{name: "empty input", input: "", sentinel: errors.ErrEmptyInput},
		{name: "whitespace only", input: "   \n\t", sentinel: errors.ErrEmptyInput},
		{name: "invalid JSON", input: `{"a": }`, sentinel: errors.ErrInvalidJSON},
		{name: "multiple documents", input: `{"a":1} {"b":2}`, sentinel: errors.ErrMultipleJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)
		})
	}
}

func TestParseString_Empty(t *testing.T) {
	_, err := ParseString("  ")
	assert.ErrorIs(t, err, errors.ErrEmptyInput)
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"ok": true}`), 0644))
	doc, err := ParseFile(good)
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, doc.JSON())

	_, err = ParseFile(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, errors.ErrFileNotFound)

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	_, err = ParseFile(empty)
	assert.ErrorIs(t, err, errors.ErrFileEmpty)
}

func TestParseValueArg(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string // compact JSON of the parsed value
	}{
		{name: "integer literal", raw: "42", expected: `42`},
		{name: "float literal", raw: "3.14", expected: `3.14`},
		{name: "true literal", raw: "true", expected: `true`},
		{name: "false literal", raw: "false", expected: `false`},
		{name: "null literal", raw: "null", expected: `null`},
		{name: "quoted string", raw: `"hello"`, expected: `"hello"`},
		{name: "plain string fallback", raw: "hello", expected: `"hello"`},
		{name: "almost-json falls back to string", raw: "{not json", expected: `"{not json"`},
		{name: "object literal", raw: `{"k":"v"}`, expected: `{"k":"v"}`},
		{name: "array literal", raw: `[1,2,3]`, expected: `[1,2,3]`},
		{name: "empty string", raw: "", expected: `""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ParseValueArg(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v.JSON())
		})
	}
}

func TestParseValueArg_FileReference(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "value.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"from": "file"}`), 0644))

	v, err := ParseValueArg("@" + p)
	require.NoError(t, err)
	require.True(t, v.IsObject())
	from, ok := v.Member("from")
	require.True(t, ok)
	assert.Equal(t, "file", from.StringVal())

	_, err = ParseValueArg("@" + filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, errors.ErrFileNotFound)
}

func TestParseValueArg_KindClassification(t *testing.T) {
	v, err := ParseValueArg("42")
	require.NoError(t, err)
	assert.Equal(t, models.KindInt, v.Kind())

	v, err = ParseValueArg("true")
	require.NoError(t, err)
	assert.Equal(t, models.KindBool, v.Kind())
}

package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/jstool/internal/models"
	"github.com/mcncl/jstool/internal/parser"
)

func inferJSON(t *testing.T, src string) string {
	t.Helper()
	v, err := parser.ParseString(src)
	require.NoError(t, err)
	return string(Infer(v, SampleLimit).AppendJSON(nil))
}

func TestInfer_Primitives(t *testing.T) {
	tests := []struct {
		src      string
		expected string
	}{
		{src: `"s"`, expected: `{"type":"string"}`},
		{src: `1`, expected: `{"type":"integer"}`},
		{src: `1.5`, expected: `{"type":"number"}`},
		{src: `true`, expected: `{"type":"boolean"}`},
		{src: `null`, expected: `{"type":"null"}`},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.expected, inferJSON(t, tt.src))
		})
	}
}

func TestInfer_EmptyContainers(t *testing.T) {
	assert.Equal(t, `{"type":"object","properties":{}}`, inferJSON(t, `{}`))
	assert.Equal(t, `{"type":"array","items":{}}`, inferJSON(t, `[]`))
}

func TestInfer_ObjectPropertiesAndRequired(t *testing.T) {
	// Properties keep document order; required is sorted and excludes nulls,
	// empty strings and empty containers.
	got := inferJSON(t, `{"zeta":"v","alpha":null,"beta":"","gamma":{},"delta":[1]}`)
	assert.Equal(t,
		`{"type":"object","properties":{"zeta":{"type":"string"},"alpha":{"type":"null"},"beta":{"type":"string"},"gamma":{"type":"object","properties":{}},"delta":{"type":"array","items":{"type":"integer"}}},"required":["delta","zeta"]}`,
		got)
}

func TestInfer_ArrayUniformItems(t *testing.T) {
	assert.Equal(t, `{"type":"array","items":{"type":"integer"}}`, inferJSON(t, `[1,2,3]`))
}

func TestInfer_NullableCollapse(t *testing.T) {
	got := inferJSON(t, `["a",null,"b"]`)
	assert.Equal(t, `{"type":"array","items":{"type":"string","nullable":true}}`, got)
}

func TestInfer_OneOf(t *testing.T) {
	got := inferJSON(t, `[1,"a",true]`)
	assert.Equal(t,
		`{"type":"array","items":{"oneOf":[{"type":"boolean"},{"type":"integer"},{"type":"string"}]}}`,
		got)
}

func TestInfer_ObjectElementsUnionAndIntersection(t *testing.T) {
	// Property union keeps first-seen order; required is the intersection of
	// the element required sets.
	got := inferJSON(t, `[{"a":1,"b":"x"},{"a":2,"c":true}]`)
	assert.Equal(t,
		`{"type":"array","items":{"type":"object","properties":{"a":{"type":"integer"},"b":{"type":"string"},"c":{"type":"boolean"}},"required":["a"]}}`,
		got)
}

func TestInfer_NestedArrays(t *testing.T) {
	got := inferJSON(t, `[[1,2],[3]]`)
	assert.Equal(t, `{"type":"array","items":{"type":"array","items":{"type":"integer"}}}`, got)
}

func TestInfer_SampleLimit(t *testing.T) {
	v, err := parser.ParseString(`[1,1,1,"late"]`)
	require.NoError(t, err)

	// With the limit below the mixed element, only integers are sampled.
	s := Infer(v, 3)
	assert.Equal(t, `{"type":"array","items":{"type":"integer"}}`, string(s.AppendJSON(nil)))

	s = Infer(v, SampleLimit)
	assert.Equal(t, `{"type":"array","items":{"oneOf":[{"type":"integer"},{"type":"string"}]}}`, string(s.AppendJSON(nil)))
}

func TestInfer_NullOnlyArray(t *testing.T) {
	assert.Equal(t, `{"type":"array","items":{"type":"null"}}`, inferJSON(t, `[null,null]`))
}

func TestSchema_ZeroMarshalsEmpty(t *testing.T) {
	s := &Schema{}
	assert.Equal(t, `{}`, string(s.AppendJSON(nil)))
}

func TestRenderDocument(t *testing.T) {
	v, err := parser.ParseString(`{"name":"Alice"}`)
	require.NoError(t, err)

	out := RenderDocument(v, "Person", SampleLimit)
	assert.Contains(t, out, `"$schema": "http://json-schema.org/draft-07/schema#"`)
	assert.Contains(t, out, `"title": "Person"`)
	assert.Contains(t, out, `"name"`)
	assert.Contains(t, out, `"required"`)
	assert.True(t, strings.HasSuffix(out, "\n"))

	idx := strings.Index(out, "$schema")
	assert.Less(t, idx, strings.Index(out, "title"))
	assert.Less(t, strings.Index(out, "title"), strings.Index(out, "properties"))
}

func TestRenderDocument_Primitive(t *testing.T) {
	out := RenderDocument(models.Bool(true), "Flag", SampleLimit)
	assert.Contains(t, out, `"title": "Flag"`)
	assert.Contains(t, out, `"type": "boolean"`)
}

func TestDefaultTitle(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "snake case file", path: "user_data.json", expected: "UserData"},
		{name: "kebab case file", path: "/tmp/api-response.json", expected: "ApiResponse"},
		{name: "plain name", path: "orders.json", expected: "Orders"},
		{name: "stdin fallback", path: "", expected: "Inferred Schema"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DefaultTitle(tt.path, "Inferred Schema"))
		})
	}
}

package preview

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/jstool/internal/errors"
	"github.com/mcncl/jstool/internal/models"
	"github.com/mcncl/jstool/internal/parser"
	"github.com/mcncl/jstool/internal/path"
)

func mustParse(t *testing.T, src string) *models.Value {
	t.Helper()
	v, err := parser.ParseString(src)
	require.NoError(t, err)
	return v
}

func mustPath(t *testing.T, p string) []path.Segment {
	t.Helper()
	segs, err := path.Parse(p)
	require.NoError(t, err)
	return segs
}

func render(t *testing.T) (*Renderer, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return New(&buf, 3), &buf
}

func TestSet_Preview(t *testing.T) {
	doc := mustParse(t, `{"name":"Alice","age":30,"city":"Oslo","tags":["x","y"],"active":true}`)
	r, buf := render(t)

	err := r.Set(doc, mustPath(t, "age"), mustParse(t, `31`), "age")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "[PREVIEW] set age: 30 → 31")
	assert.Contains(t, out, "Run with -f to apply.")
	assert.Contains(t, out, "~~") // underline under the old value
	assert.Contains(t, out, "→ 31")
}

func TestSet_PreviewDoesNotMutate(t *testing.T) {
	doc := mustParse(t, `{"a":1}`)
	before := doc.JSON()
	r, _ := render(t)

	require.NoError(t, r.Set(doc, mustPath(t, "a"), mustParse(t, `2`), "a"))
	assert.Equal(t, before, doc.JSON())
}

func TestSet_ContextElision(t *testing.T) {
	// Enough lines that text far from the target is elided.
	long := mustParse(t, `{"k1":"`+strings.Repeat("a", 90)+`","k2":2,"k3":3,"k4":4,"k5":5,"k6":6,"k7":7,"k8":8,"k9":9,"k10":10}`)
	var buf bytes.Buffer
	r := New(&buf, 1)

	require.NoError(t, r.Set(long, mustPath(t, "k10"), mustParse(t, `0`), "k10"))
	assert.Contains(t, buf.String(), "  ...")
}

func TestSetNull_Preview(t *testing.T) {
	doc := mustParse(t, `{"name":"Alice"}`)
	r, buf := render(t)

	require.NoError(t, r.SetNull(doc, mustPath(t, "name"), "name"))
	assert.Contains(t, buf.String(), `[PREVIEW] set-null name: "Alice" → null`)
}

func TestDelete_PreviewPrimitive(t *testing.T) {
	doc := mustParse(t, `{"name":"Alice","age":30}`)
	r, buf := render(t)

	require.NoError(t, r.Delete(doc, mustPath(t, "age"), "age"))
	out := buf.String()
	assert.Contains(t, out, "← DELETE")
	assert.Contains(t, out, "[PREVIEW] del age: 30")
}

func TestDelete_PreviewContainerSummary(t *testing.T) {
	doc := mustParse(t, `{"cfg":{"a":1,"b":2},"x":1}`)
	r, buf := render(t)

	require.NoError(t, r.Delete(doc, mustPath(t, "cfg"), "cfg"))
	out := buf.String()
	assert.Contains(t, out, `Will delete {"a":1,"b":2}`)
	assert.Contains(t, out, "at path cfg")
}

func TestDelete_PreviewTruncatesLongValues(t *testing.T) {
	doc := mustParse(t, `{"big":"`+strings.Repeat("x", 100)+`"}`)
	r, buf := render(t)

	require.NoError(t, r.Delete(doc, mustPath(t, "big"), "big"))
	assert.Contains(t, buf.String(), `[PREVIEW] del big: "`+strings.Repeat("x", 56)+"...")
}

func TestInsert_Preview(t *testing.T) {
	doc := mustParse(t, `{"xs":["aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa","b","c"]}`)

	t.Run("before", func(t *testing.T) {
		r, buf := render(t)
		err := r.Insert(doc, mustPath(t, "xs[1]"), mustParse(t, `"new"`), "xs[1]", Before)
		require.NoError(t, err)

		out := buf.String()
		assert.Contains(t, out, "← INSERT HERE")
		assert.Contains(t, out, `[PREVIEW] before xs[1]: "new"`)
		assert.Contains(t, out, "Array length: 3 → 4")
	})

	t.Run("after", func(t *testing.T) {
		r, buf := render(t)
		err := r.Insert(doc, mustPath(t, "xs[1]"), mustParse(t, `"new"`), "xs[1]", After)
		require.NoError(t, err)
		assert.Contains(t, buf.String(), `[PREVIEW] after xs[1]: "new"`)
	})
}

func TestInsert_NonArrayTarget(t *testing.T) {
	doc := mustParse(t, `{"a":{"b":1}}`)
	r, buf := render(t)

	err := r.Insert(doc, mustPath(t, "a.b"), mustParse(t, `2`), "a.b", Before)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNotArrayElement)
	assert.Empty(t, buf.String())
}

func TestCopy_Preview(t *testing.T) {
	doc := mustParse(t, `{"src":{"k":1}}`)
	r, buf := render(t)

	require.NoError(t, r.Copy(doc, mustPath(t, "src"), mustPath(t, "dst"), "src", "dst"))
	out := buf.String()
	assert.Contains(t, out, "[PREVIEW] copy src → dst")
	assert.Contains(t, out, `{"k":1}`)
}

func TestMerge_PreviewKeyLists(t *testing.T) {
	doc := mustParse(t, `{"a":1,"b":{"c":2}}`)
	patch := mustParse(t, `{"b":{"d":3},"e":4}`)
	r, buf := render(t)

	require.NoError(t, r.Merge(doc, nil, patch, "root", "patch.json"))
	out := buf.String()
	assert.Contains(t, out, "+ add:    e")
	assert.Contains(t, out, "~ update:  b")
	assert.Contains(t, out, "[PREVIEW] merge root ← patch.json")
}

func TestMerge_PreviewReplace(t *testing.T) {
	doc := mustParse(t, `{"a":[1,2]}`)
	patch := mustParse(t, `[9]`)
	r, buf := render(t)

	require.NoError(t, r.Merge(doc, mustPath(t, "a"), patch, "a", "patch.json"))
	assert.Contains(t, buf.String(), "Replace a with: [9]")
}

func TestPreview_NavigateErrorsPropagate(t *testing.T) {
	doc := mustParse(t, `{"a":1}`)
	r, _ := render(t)

	err := r.Set(doc, mustPath(t, "missing"), models.Null(), "missing")
	assert.ErrorIs(t, err, errors.ErrKeyNotFound)

	err = r.Delete(doc, mustPath(t, "a.b"), "a.b")
	assert.ErrorIs(t, err, errors.ErrWrongKind)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "1234567...", truncate("1234567890123", 10))
}

func TestTruncate_RuneBoundary(t *testing.T) {
	// A cut landing inside a multi-byte rune backs up to its start.
	s := "1234" + strings.Repeat("é", 10) // é is 2 bytes
	got := truncate(s, 10)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "1234é...", got)

	got = truncate(strings.Repeat("日", 10), 10) // 日 is 3 bytes
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "日日...", got)
}

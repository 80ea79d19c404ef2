// Package preview renders a diff-like textual preview of a pending edit
// against the pretty-printed document. It locates the affected region by
// searching the serialized text, which is best-effort UI sugar: when the
// region cannot be found the preview degrades to a summary, never an error.
package preview

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/mcncl/jstool/internal/errors"
	"github.com/mcncl/jstool/internal/models"
	"github.com/mcncl/jstool/internal/path"
)

// Mode selects the insertion side for insert previews.
type Mode string

const (
	Before Mode = "before"
	After  Mode = "after"
)

// insertContext is the context window around insert markers; underline
// previews use the renderer's configurable window.
const insertContext = 2

// Renderer writes previews to W with Context lines of surrounding text.
type Renderer struct {
	W       io.Writer
	Context int
}

// New returns a renderer with the given context window (3 is the usual
// default).
func New(w io.Writer, context int) *Renderer {
	return &Renderer{W: w, Context: context}
}

// Set previews replacing the value at the addressed location.
func (r *Renderer) Set(doc *models.Value, segments []path.Segment, newVal *models.Value, pathStr string) error {
	_, key, oldVal, err := path.Navigate(doc, segments)
	if err != nil {
		return err
	}
	oldJSON := oldVal.JSON()
	newJSON := newVal.JSON()
	lines := strings.Split(doc.PrettyJSON(), "\n")

	fmt.Fprintln(r.W)
	r.underlineValue(lines, key, oldJSON, "→ "+newJSON)
	fmt.Fprintf(r.W, "\n[PREVIEW] set %s: %s → %s\n", pathStr, oldJSON, newJSON)
	fmt.Fprintln(r.W, "Run with -f to apply.")
	fmt.Fprintln(r.W)
	return nil
}

// SetNull previews replacing the value at the addressed location with null.
func (r *Renderer) SetNull(doc *models.Value, segments []path.Segment, pathStr string) error {
	_, key, oldVal, err := path.Navigate(doc, segments)
	if err != nil {
		return err
	}
	oldJSON := oldVal.JSON()
	lines := strings.Split(doc.PrettyJSON(), "\n")

	fmt.Fprintln(r.W)
	r.underlineValue(lines, key, oldJSON, "→ null")
	fmt.Fprintf(r.W, "\n[PREVIEW] set-null %s: %s → null\n", pathStr, oldJSON)
	fmt.Fprintln(r.W, "Run with -f to apply.")
	fmt.Fprintln(r.W)
	return nil
}

// Delete previews removing the addressed key or element.
func (r *Renderer) Delete(doc *models.Value, segments []path.Segment, pathStr string) error {
	_, key, oldVal, err := path.Navigate(doc, segments)
	if err != nil {
		return err
	}
	oldJSON := oldVal.JSON()
	lines := strings.Split(doc.PrettyJSON(), "\n")

	fmt.Fprintln(r.W)
	if !oldVal.IsContainer() {
		search := oldJSON
		if !key.IsIndex {
			search = fmt.Sprintf("%q: %s", key.Key, oldJSON)
		}
		if li, cs, ce, ok := findFirst(lines, search); ok {
			r.showWithUnderline(lines, li, cs, ce, "← DELETE")
		} else {
			fmt.Fprintf(r.W, "  (could not locate value in JSON text)\n\n")
		}
	} else {
		fmt.Fprintf(r.W, "  Will delete %s\n", truncate(oldJSON, 60))
		fmt.Fprintf(r.W, "  at path %s\n", pathStr)
	}

	fmt.Fprintf(r.W, "\n[PREVIEW] del %s: %s\n", pathStr, truncate(oldJSON, 60))
	fmt.Fprintln(r.W, "Run with -f to apply.")
	fmt.Fprintln(r.W)
	return nil
}

// Insert previews inserting newVal before or after the addressed array
// element.
func (r *Renderer) Insert(doc *models.Value, segments []path.Segment, newVal *models.Value, pathStr string, mode Mode) error {
	parent, key, curVal, err := path.Navigate(doc, segments)
	if err != nil {
		return err
	}
	if !parent.IsArray() {
		return errors.NewEditError(
			fmt.Sprintf("'%s' only works on array elements; %q is not an array element", mode, pathStr),
			errors.ErrNotArrayElement)
	}

	newJSON := newVal.JSON()
	lines := strings.Split(doc.PrettyJSON(), "\n")

	refLi, found := findElementLine(lines, curVal)

	fmt.Fprintln(r.W)
	if found {
		refLine := lines[refLi]
		indent := refLine[:len(refLine)-len(strings.TrimLeft(refLine, " "))]
		r.showInsertMarker(lines, refLi, indent, newJSON, mode)
	} else {
		insIdx := key.Index
		if mode == After {
			insIdx++
		}
		fmt.Fprintf(r.W, "  Will insert %s at index %d\n\n", newJSON, insIdx)
	}

	fmt.Fprintf(r.W, "\n[PREVIEW] %s %s: %s\n", mode, pathStr, newJSON)
	fmt.Fprintf(r.W, "  Array length: %d → %d\n", parent.Len(), parent.Len()+1)
	fmt.Fprintln(r.W, "Run with -f to apply.")
	fmt.Fprintln(r.W)
	return nil
}

// Copy previews copying the value at src to dst.
func (r *Renderer) Copy(doc *models.Value, src, dst []path.Segment, srcStr, dstStr string) error {
	_, _, srcVal, err := path.Navigate(doc, src)
	if err != nil {
		return err
	}
	fmt.Fprintln(r.W)
	fmt.Fprintf(r.W, "  %s\n", srcStr)
	fmt.Fprintf(r.W, "    %s\n", truncate(srcVal.JSON(), 80))
	fmt.Fprintf(r.W, "  → %s\n", dstStr)
	fmt.Fprintf(r.W, "\n[PREVIEW] copy %s → %s\n", srcStr, dstStr)
	fmt.Fprintln(r.W, "Run with -f to apply.")
	fmt.Fprintln(r.W)
	return nil
}

// Merge previews deep-merging patch into the value at the addressed
// location.
func (r *Renderer) Merge(doc *models.Value, segments []path.Segment, patch *models.Value, pathStr, patchSrc string) error {
	node := doc
	if len(segments) > 0 {
		_, _, n, err := path.Navigate(doc, segments)
		if err != nil {
			return err
		}
		node = n
	}

	fmt.Fprintln(r.W)
	if patch.IsObject() && node.IsObject() {
		var newKeys, updKeys []string
		for _, m := range patch.Members() {
			if _, ok := node.Member(m.Key); ok {
				updKeys = append(updKeys, m.Key)
			} else {
				newKeys = append(newKeys, m.Key)
			}
		}
		if len(newKeys) > 0 {
			fmt.Fprintf(r.W, "  + add:    %s\n", strings.Join(newKeys, ", "))
		}
		if len(updKeys) > 0 {
			fmt.Fprintf(r.W, "  ~ update:  %s\n", strings.Join(updKeys, ", "))
		}
	} else {
		fmt.Fprintf(r.W, "  Replace %s with: %s\n", pathStr, truncate(patch.JSON(), 80))
	}

	fmt.Fprintf(r.W, "\n[PREVIEW] merge %s ← %s\n", pathStr, patchSrc)
	fmt.Fprintln(r.W, "Run with -f to apply.")
	fmt.Fprintln(r.W)
	return nil
}

// underlineValue locates a value (object member or array element) in the
// pretty text and renders it underlined with the given label.
func (r *Renderer) underlineValue(lines []string, key path.Segment, oldJSON, label string) {
	if !key.IsIndex {
		search := fmt.Sprintf("%q: %s", key.Key, oldJSON)
		if li, cs, _, ok := findFirst(lines, search); ok {
			valStart := cs + len(fmt.Sprintf("%q: ", key.Key))
			valEnd := cs + len(search)
			r.showWithUnderline(lines, li, valStart, valEnd, label)
			return
		}
	} else if li, cs, ce, ok := findFirst(lines, oldJSON); ok {
		r.showWithUnderline(lines, li, cs, ce, label)
		return
	}
	fmt.Fprintf(r.W, "  (could not locate value in JSON text)\n\n")
}

// showWithUnderline prints the document with a tilde underline and label on
// one line. Lines outside the context window are elided with "...".
func (r *Renderer) showWithUnderline(lines []string, lineIdx, ulStart, ulEnd int, label string) {
	for i, line := range lines {
		dist := abs(i - lineIdx)
		if dist > r.Context {
			if dist == r.Context+1 {
				fmt.Fprintln(r.W, "  ...")
			}
			continue
		}
		if i == lineIdx {
			fmt.Fprintf(r.W, "  %s\n", line)
			spaces := strings.Repeat(" ", 2+ulStart)
			tildes := strings.Repeat("~", ulEnd-ulStart)
			fmt.Fprintf(r.W, "%s%s %s\n", spaces, tildes, label)
		} else {
			fmt.Fprintf(r.W, "  %s\n", line)
		}
	}
}

// showInsertMarker prints the document with an INSERT HERE marker before the
// element's opening line or after its matching closing line.
func (r *Renderer) showInsertMarker(lines []string, openLineIdx int, indent, newJSON string, mode Mode) {
	anchor := openLineIdx
	if mode == After {
		anchor = findClosingLine(lines, openLineIdx)
	}
	insertLabel := indent + newJSON

	for i, line := range lines {
		dist := abs(i - anchor)
		if dist > insertContext {
			if dist == insertContext+1 {
				fmt.Fprintln(r.W, "  ...")
			}
			continue
		}
		switch {
		case i == anchor && mode == Before:
			fmt.Fprintf(r.W, "  %s  ← INSERT HERE\n", insertLabel)
			fmt.Fprintf(r.W, "  %s\n", line)
		case i == anchor && mode == After:
			fmt.Fprintf(r.W, "  %s\n", line)
			fmt.Fprintf(r.W, "  %s  ← INSERT HERE\n", insertLabel)
		default:
			fmt.Fprintf(r.W, "  %s\n", line)
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// Package path implements the dotted/bracketed addressing grammar and the
// navigator that resolves a parsed path against a document.
//
// Grammar:
//
//	root            whole document (empty segment list)
//	count           root-level key
//	users[0].name   object key + array index
//	root[0].key     root-array element key
package path

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mcncl/jstool/internal/errors"
	"github.com/mcncl/jstool/internal/models"
)

// Segment is one step of a parsed path: either an object key or an array
// index.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

// Key returns a key segment.
func Key(k string) Segment { return Segment{Key: k} }

// Index returns an index segment.
func Index(i int) Segment { return Segment{Index: i, IsIndex: true} }

// String renders the segment the way it appears in a path.
func (s Segment) String() string {
	if s.IsIndex {
		return fmt.Sprintf("[%d]", s.Index)
	}
	return s.Key
}

// Parse parses a path string into its segment list. "root" yields the empty
// list; a leading "root." or "root[" is stripped so root-relative and bare
// paths address the same nodes.
func Parse(pathStr string) ([]Segment, error) {
	s := strings.TrimSpace(pathStr)
	if s == "root" {
		return []Segment{}, nil
	}
	if strings.HasPrefix(s, "root.") {
		s = s[5:]
	} else if strings.HasPrefix(s, "root[") {
		s = s[4:] // keep the leading '['
	}

	segments := []Segment{}
	i := 0
	for i < len(s) {
		if s[i] == '[' {
			j := strings.IndexByte(s[i:], ']')
			if j < 0 {
				return nil, errors.NewPathError(
					fmt.Sprintf("unterminated index in path: %q", pathStr), nil)
			}
			j += i
			idxStr := s[i+1 : j]
			idx, err := strconv.Atoi(idxStr)
			if err != nil || strings.HasPrefix(idxStr, "-") || strings.HasPrefix(idxStr, "+") {
				return nil, errors.NewPathError(
					fmt.Sprintf("non-integer index in path: %q", s[i:j+1]), nil)
			}
			segments = append(segments, Index(idx))
			i = j + 1
			if i < len(s) && s[i] == '.' {
				i++ // skip dot after ']'
			}
		} else {
			j := i
			for j < len(s) && s[j] != '.' && s[j] != '[' {
				j++
			}
			key := s[i:j]
			if key == "" {
				return nil, errors.NewPathError(
					fmt.Sprintf("empty key in path: %q", pathStr), nil)
			}
			segments = append(segments, Key(key))
			i = j
			if i < len(s) && s[i] == '.' {
				i++ // skip dot
			}
		}
	}
	return segments, nil
}

// Navigate walks doc by segments and returns the immediate parent container,
// the final segment, and the resolved node. For the empty segment list the
// parent is nil and node is the whole document; root-only operations must be
// special-cased by callers.
//
// Key segments require the current node to be an object holding that key.
// Index segments require an array and accept -len <= i < len, counting from
// the end when negative.
func Navigate(doc *models.Value, segments []Segment) (parent *models.Value, key Segment, node *models.Value, err error) {
	node = doc
	for _, seg := range segments {
		parent = node
		key = seg
		if !seg.IsIndex {
			if !node.IsObject() {
				return nil, Segment{}, nil, errors.NewNavigateError(
					fmt.Sprintf("expected object to look up key %q, got %s", seg.Key, node.TypeName()),
					errors.ErrWrongKind)
			}
			child, ok := node.Member(seg.Key)
			if !ok {
				return nil, Segment{}, nil, errors.NewNavigateError(
					fmt.Sprintf("key not found: %q", seg.Key),
					errors.ErrKeyNotFound)
			}
			node = child
		} else {
			if !node.IsArray() {
				return nil, Segment{}, nil, errors.NewNavigateError(
					fmt.Sprintf("expected array for index %d, got %s", seg.Index, node.TypeName()),
					errors.ErrWrongKind)
			}
			n := node.Len()
			if seg.Index < -n || seg.Index >= n {
				return nil, Segment{}, nil, errors.NewNavigateError(
					fmt.Sprintf("index %d out of range (len=%d)", seg.Index, n),
					errors.ErrIndexOutOfRange)
			}
			node = node.Elem(seg.Index)
		}
	}
	return parent, key, node, nil
}

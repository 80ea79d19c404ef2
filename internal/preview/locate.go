package preview

import (
	"strings"

	"github.com/mcncl/jstool/internal/models"
)

// findFirst returns the first line containing search and the column span of
// the match.
func findFirst(lines []string, search string) (lineIdx, colStart, colEnd int, ok bool) {
	for i, line := range lines {
		if col := strings.Index(line, search); col != -1 {
			return i, col, col + len(search), true
		}
	}
	return 0, 0, 0, false
}

// findClosingLine finds the line holding the bracket that matches the first
// opening bracket on line openLi. A depth counter over the text is enough
// for well-formed JSON.
func findClosingLine(lines []string, openLi int) int {
	var openChar, closeChar byte
	for i := 0; i < len(lines[openLi]); i++ {
		switch lines[openLi][i] {
		case '{':
			openChar, closeChar = '{', '}'
		case '[':
			openChar, closeChar = '[', ']'
		}
		if openChar != 0 {
			break
		}
	}
	if openChar == 0 {
		return openLi // no bracket on the line
	}

	depth := 0
	inStr := false
	escaped := false
	for li := openLi; li < len(lines); li++ {
		line := lines[li]
		for i := 0; i < len(line); i++ {
			c := line[i]
			if escaped {
				escaped = false
				continue
			}
			if c == '\\' && inStr {
				escaped = true
				continue
			}
			if c == '"' {
				inStr = !inStr
				continue
			}
			if inStr {
				continue
			}
			switch c {
			case openChar:
				depth++
			case closeChar:
				depth--
				if depth == 0 {
					return li
				}
			}
		}
	}
	return openLi
}

// findElementLine locates the line of an element's opening character. For
// primitives it searches the literal directly; for containers it searches
// for a distinguishing child and walks back to the opening bracket.
func findElementLine(lines []string, val *models.Value) (int, bool) {
	if !val.IsContainer() {
		li, _, _, ok := findFirst(lines, val.JSON())
		return li, ok
	}

	if val.IsObject() && val.Len() > 0 {
		first := val.Members()[0]
		if !first.Value.IsContainer() {
			search := `"` + first.Key + `": ` + first.Value.JSON()
			if li, _, _, ok := findFirst(lines, search); ok {
				return backtrackToOpen(lines, li, "{"), true
			}
		}
	}

	if val.IsArray() && val.Len() > 0 {
		child := val.Elem(0)
		if !child.IsContainer() {
			if li, _, _, ok := findFirst(lines, child.JSON()); ok {
				return backtrackToOpen(lines, li, "["), true
			}
		}
	}

	return 0, false
}

// backtrackToOpen walks up to five lines backwards looking for the bare
// opening bracket of the element found on line li.
func backtrackToOpen(lines []string, li int, open string) int {
	for back := li; back >= 0 && back > li-5; back-- {
		stripped := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(lines[back]), ","))
		if stripped == open {
			return back
		}
	}
	return li
}

// Package flatten converts a document into ordered `path type value` rows
// and provides the row post-processing behind the view command: null type
// inference, structural schema reduction, path filtering and pagination.
package flatten

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mcncl/jstool/internal/models"
)

// Marker classifies what the value column of a row holds.
type Marker uint8

const (
	// MarkerNone is a container with children: no value column.
	MarkerNone Marker = iota
	// MarkerEmpty is an empty container, rendered "(empty)".
	MarkerEmpty
	// MarkerNull is an explicit null leaf, rendered "(null)".
	MarkerNull
	// MarkerValue is a primitive with its literal value.
	MarkerValue
)

// Row is one line of flattened output.
type Row struct {
	Path   string
	Type   string
	Marker Marker
	Value  string // set only for MarkerValue
}

// RootPath is the path of the document's own row.
const RootPath = "root"

// Flatten produces the pre-order row sequence for a value. Containers emit a
// header row followed by their children; the root container's children use
// bare keys while nested children compose with '.' and '[N]'.
func Flatten(v *models.Value) []Row {
	return flattenAt(v, RootPath, true)
}

// FlattenAt flattens starting from an arbitrary path label.
func FlattenAt(v *models.Value, path string) []Row {
	return flattenAt(v, path, false)
}

func flattenAt(v *models.Value, path string, rootLevel bool) []Row {
	var rows []Row
	switch v.Kind() {
	case models.KindObject:
		rows = append(rows, containerRow(path, "object", v.Len()))
		for _, m := range v.Members() {
			child := m.Key
			if !rootLevel {
				child = path + "." + m.Key
			}
			rows = append(rows, flattenAt(m.Value, child, false)...)
		}
	case models.KindArray:
		rows = append(rows, containerRow(path, "array", v.Len()))
		for i, e := range v.Elems() {
			rows = append(rows, flattenAt(e, fmt.Sprintf("%s[%d]", path, i), false)...)
		}
	case models.KindNull:
		rows = append(rows, Row{Path: path, Type: "null", Marker: MarkerNull})
	default:
		rows = append(rows, Row{Path: path, Type: v.TypeName(), Marker: MarkerValue, Value: FormatValue(v)})
	}
	return rows
}

func containerRow(path, typeName string, length int) Row {
	if length == 0 {
		return Row{Path: path, Type: typeName, Marker: MarkerEmpty}
	}
	return Row{Path: path, Type: typeName, Marker: MarkerNone}
}

// FormatValue renders a primitive for the value column: booleans as
// true/false, numbers by their source literal, strings unquoted.
func FormatValue(v *models.Value) string {
	switch v.Kind() {
	case models.KindBool:
		if v.BoolVal() {
			return "true"
		}
		return "false"
	case models.KindInt, models.KindFloat:
		return v.NumberLiteral()
	case models.KindString:
		return v.StringVal()
	default:
		return ""
	}
}

var indexRe = regexp.MustCompile(`\[\d+\]`)

// Signature returns the structural signature of a path: every bracketed
// index replaced by the wildcard marker, grouping the same field across
// array elements.
func Signature(path string) string {
	return indexRe.ReplaceAllString(path, "[*]")
}

// InferNulls rewrites every null leaf's type to the first non-null type seen
// at the same structural signature, or "unknown" when no sibling establishes
// one. First occurrence wins; later conflicting types are ignored. All other
// rows pass through unchanged.
func InferNulls(rows []Row) []Row {
	known := make(map[string]string)
	for _, row := range rows {
		if row.Marker != MarkerValue {
			continue
		}
		s := Signature(row.Path)
		if _, ok := known[s]; !ok {
			known[s] = row.Type
		}
	}

	result := make([]Row, 0, len(rows))
	for _, row := range rows {
		if row.Marker == MarkerNull && row.Type == "null" {
			inferred, ok := known[Signature(row.Path)]
			if !ok {
				inferred = "unknown"
			}
			result = append(result, Row{Path: row.Path, Type: inferred, Marker: MarkerNull})
		} else {
			result = append(result, row)
		}
	}
	return result
}

type schemaKey struct {
	path string
	typ  string
}

// SchemaRows collapses array indices to the wildcard and deduplicates rows
// by (structural path, type), keeping first occurrence and relative order.
// Primitive values are suppressed; the (empty) and (null) markers survive.
func SchemaRows(rows []Row) []Row {
	seen := make(map[schemaKey]bool)
	var result []Row
	for _, row := range rows {
		structPath := Signature(row.Path)
		key := schemaKey{path: structPath, typ: row.Type}
		if seen[key] {
			continue
		}
		seen[key] = true
		out := Row{Path: structPath, Type: row.Type, Marker: row.Marker}
		if row.Marker == MarkerValue {
			out.Marker = MarkerNone // hide the data, show type only
		}
		result = append(result, out)
	}
	return result
}

// FilterRows keeps rows whose path equals prefix or descends from it.
func FilterRows(rows []Row, prefix string) []Row {
	var out []Row
	dotted := prefix + "."
	bracketed := prefix + "["
	for _, row := range rows {
		p := row.Path
		if p == prefix || strings.HasPrefix(p, dotted) || strings.HasPrefix(p, bracketed) {
			out = append(out, row)
		}
	}
	return out
}

// Format renders a row as its output line.
func (r Row) Format() string {
	switch r.Marker {
	case MarkerEmpty:
		return fmt.Sprintf("%s %s (empty)", r.Path, r.Type)
	case MarkerNull:
		return fmt.Sprintf("%s %s (null)", r.Path, r.Type)
	case MarkerValue:
		return fmt.Sprintf("%s %s %s", r.Path, r.Type, r.Value)
	default:
		return fmt.Sprintf("%s %s", r.Path, r.Type)
	}
}

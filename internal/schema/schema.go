// Package schema infers a draft-07 JSON Schema describing a document's
// shape.
package schema

import (
	"encoding/json"
	"path/filepath"
	"sort"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/tidwall/pretty"

	"github.com/mcncl/jstool/internal/models"
)

// SampleLimit is the default cap on array elements sampled for item-schema
// merging.
const SampleLimit = 20

// Draft is the $schema identifier emitted on rendered documents.
const Draft = "http://json-schema.org/draft-07/schema#"

// Property is one object property schema, in document order.
type Property struct {
	Key    string
	Schema *Schema
}

// Schema is the subset of JSON Schema this tool emits. A zero Schema
// marshals as the empty schema {}.
type Schema struct {
	Type       string
	Nullable   bool
	OneOf      []string // union of type names; set instead of Type
	Properties []Property
	Required   []string
	Items      *Schema
}

// Infer recursively infers a schema for a value, sampling at most
// sampleLimit elements per array.
func Infer(v *models.Value, sampleLimit int) *Schema {
	switch v.Kind() {
	case models.KindNull, models.KindBool, models.KindInt, models.KindFloat, models.KindString:
		return &Schema{Type: v.TypeName()}
	case models.KindArray:
		if v.Len() == 0 {
			return &Schema{Type: "array", Items: &Schema{}}
		}
		elems := v.Elems()
		if len(elems) > sampleLimit {
			elems = elems[:sampleLimit]
		}
		itemSchemas := make([]*Schema, len(elems))
		for i, e := range elems {
			itemSchemas[i] = Infer(e, sampleLimit)
		}
		return &Schema{Type: "array", Items: mergeSchemas(itemSchemas)}
	case models.KindObject:
		s := &Schema{Type: "object", Properties: []Property{}}
		var required []string
		for _, m := range v.Members() {
			s.Properties = append(s.Properties, Property{Key: m.Key, Schema: Infer(m.Value, sampleLimit)})
			if isPresent(m.Value) {
				required = append(required, m.Key)
			}
		}
		sort.Strings(required)
		s.Required = required
		return s
	}
	return &Schema{}
}

// isPresent reports whether a value counts toward the required list: nulls,
// empty strings and empty containers do not.
func isPresent(v *models.Value) bool {
	switch v.Kind() {
	case models.KindNull:
		return false
	case models.KindString:
		return v.StringVal() != ""
	case models.KindObject, models.KindArray:
		return v.Len() > 0
	default:
		return true
	}
}

// mergeSchemas merges sampled array element schemas into one item schema.
// Same-type schemas merge structurally; a type set differing only by null
// collapses to the non-null type marked nullable; anything else becomes an
// explicit oneOf list.
func mergeSchemas(schemas []*Schema) *Schema {
	if len(schemas) == 0 {
		return &Schema{}
	}
	if len(schemas) == 1 {
		return schemas[0]
	}

	typeSet := make(map[string]bool)
	for _, s := range schemas {
		if s.Type != "" {
			typeSet[s.Type] = true
		}
	}
	if len(typeSet) == 0 {
		return &Schema{}
	}

	if len(typeSet) == 1 {
		var t string
		for k := range typeSet {
			t = k
		}
		switch t {
		case "object":
			merged := &Schema{Type: "object", Properties: []Property{}}
			seen := make(map[string]bool)
			for _, s := range schemas {
				for _, p := range s.Properties {
					if !seen[p.Key] {
						seen[p.Key] = true
						merged.Properties = append(merged.Properties, p)
					}
				}
			}
			common := requiredIntersection(schemas)
			if len(common) > 0 {
				merged.Required = common
			}
			return merged
		case "array":
			items := make([]*Schema, len(schemas))
			for i, s := range schemas {
				if s.Items != nil {
					items[i] = s.Items
				} else {
					items[i] = &Schema{}
				}
			}
			return &Schema{Type: "array", Items: mergeSchemas(items)}
		default:
			return &Schema{Type: t}
		}
	}

	var nonNull []string
	for t := range typeSet {
		if t != "null" {
			nonNull = append(nonNull, t)
		}
	}
	if len(nonNull) == 1 && typeSet["null"] {
		return &Schema{Type: nonNull[0], Nullable: true}
	}
	all := make([]string, 0, len(typeSet))
	for t := range typeSet {
		all = append(all, t)
	}
	sort.Strings(all)
	return &Schema{OneOf: all}
}

func requiredIntersection(schemas []*Schema) []string {
	counts := make(map[string]int)
	for _, s := range schemas {
		for _, k := range s.Required {
			counts[k]++
		}
	}
	var common []string
	for k, n := range counts {
		if n == len(schemas) {
			common = append(common, k)
		}
	}
	sort.Strings(common)
	return common
}

// AppendJSON appends the compact JSON form of the schema to dst, preserving
// property order.
func (s *Schema) AppendJSON(dst []byte) []byte {
	if len(s.OneOf) > 0 {
		dst = append(dst, `{"oneOf":[`...)
		for i, t := range s.OneOf {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = append(dst, `{"type":`...)
			dst = appendJSONString(dst, t)
			dst = append(dst, '}')
		}
		return append(dst, `]}`...)
	}
	if s.Type == "" {
		return append(dst, `{}`...)
	}
	dst = append(dst, `{"type":`...)
	dst = appendJSONString(dst, s.Type)
	if s.Nullable {
		dst = append(dst, `,"nullable":true`...)
	}
	if s.Type == "object" {
		dst = append(dst, `,"properties":{`...)
		for i, p := range s.Properties {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendJSONString(dst, p.Key)
			dst = append(dst, ':')
			dst = p.Schema.AppendJSON(dst)
		}
		dst = append(dst, '}')
		if len(s.Required) > 0 {
			dst = append(dst, `,"required":[`...)
			for i, k := range s.Required {
				if i > 0 {
					dst = append(dst, ',')
				}
				dst = appendJSONString(dst, k)
			}
			dst = append(dst, ']')
		}
	}
	if s.Type == "array" {
		dst = append(dst, `,"items":`...)
		if s.Items != nil {
			dst = s.Items.AppendJSON(dst)
		} else {
			dst = append(dst, `{}`...)
		}
	}
	return append(dst, '}')
}

// MarshalJSON implements json.Marshaler.
func (s *Schema) MarshalJSON() ([]byte, error) { return s.AppendJSON(nil), nil }

func appendJSONString(dst []byte, s string) []byte {
	b, _ := json.Marshal(s)
	return append(dst, b...)
}

// RenderDocument infers the schema for a document and renders it as an
// indented draft-07 schema with $schema and title headers.
func RenderDocument(v *models.Value, title string, sampleLimit int) string {
	body := Infer(v, sampleLimit).AppendJSON(nil)
	out := append([]byte(`{"$schema":`), nil...)
	out = appendJSONString(out, Draft)
	out = append(out, `,"title":`...)
	out = appendJSONString(out, title)
	if string(body) != "{}" {
		out = append(out, ',')
		out = append(out, body[1:len(body)-1]...)
	}
	out = append(out, '}')
	return string(pretty.Pretty(out))
}

// DefaultTitle derives a schema title from the input filename
// ("user_data.json" becomes "UserData"), falling back to fallback when the
// document came from stdin.
func DefaultTitle(filePath, fallback string) string {
	if filePath == "" {
		return fallback
	}
	base := filepath.Base(filePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" {
		return fallback
	}
	return strcase.ToCamel(base)
}

// Package models defines the ordered, tagged JSON value tree that every other
// package operates on. Object member order and array order always match the
// source document.
package models

import "strings"

// Kind discriminates the JSON value variants.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindObject
	KindArray
)

// String returns the user-facing type name for the kind. Booleans are a
// distinct kind, so they can never be reported as integers.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindInt:
		return "integer"
	case KindFloat:
		return "number"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// Member is one key/value pair of an object. Members keep document order.
type Member struct {
	Key   string
	Value *Value
}

// Value is a JSON value. Numbers keep their source literal in raw so that
// re-serializing a document does not rewrite "1.0" to "1".
type Value struct {
	kind    Kind
	b       bool
	raw     string // number literal as it appeared in the source
	str     string
	members []Member // KindObject
	elems   []*Value // KindArray
}

// Null returns a JSON null.
func Null() *Value { return &Value{kind: KindNull} }

// Bool returns a JSON boolean.
func Bool(b bool) *Value { return &Value{kind: KindBool, b: b} }

// String returns a JSON string.
func String(s string) *Value { return &Value{kind: KindString, str: s} }

// Number builds a numeric value from a JSON number literal. Literals without
// a fraction or exponent are integers, everything else is a number.
func Number(literal string) *Value {
	if isIntegerLiteral(literal) {
		return &Value{kind: KindInt, raw: literal}
	}
	return &Value{kind: KindFloat, raw: literal}
}

func isIntegerLiteral(s string) bool {
	return !strings.ContainsAny(s, ".eE")
}

// NewObject returns an object with the given members, in order.
func NewObject(members ...Member) *Value {
	return &Value{kind: KindObject, members: members}
}

// NewArray returns an array with the given elements, in order.
func NewArray(elems ...*Value) *Value {
	return &Value{kind: KindArray, elems: elems}
}

// Kind reports the value's variant.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

// TypeName is shorthand for v.Kind().String().
func (v *Value) TypeName() string { return v.Kind().String() }

// IsNull reports whether the value is a JSON null.
func (v *Value) IsNull() bool { return v == nil || v.kind == KindNull }

// IsObject reports whether the value is an object.
func (v *Value) IsObject() bool { return v != nil && v.kind == KindObject }

// IsArray reports whether the value is an array.
func (v *Value) IsArray() bool { return v != nil && v.kind == KindArray }

// IsContainer reports whether the value is an object or an array.
func (v *Value) IsContainer() bool { return v.IsObject() || v.IsArray() }

// BoolVal returns the boolean payload (false for other kinds).
func (v *Value) BoolVal() bool { return v != nil && v.kind == KindBool && v.b }

// StringVal returns the string payload ("" for other kinds).
func (v *Value) StringVal() string {
	if v == nil || v.kind != KindString {
		return ""
	}
	return v.str
}

// NumberLiteral returns the raw numeric literal ("" for other kinds).
func (v *Value) NumberLiteral() string {
	if v == nil || (v.kind != KindInt && v.kind != KindFloat) {
		return ""
	}
	return v.raw
}

// Len returns the member or element count for containers, 0 otherwise.
func (v *Value) Len() int {
	switch v.Kind() {
	case KindObject:
		return len(v.members)
	case KindArray:
		return len(v.elems)
	default:
		return 0
	}
}

// Members returns the object's members in document order.
func (v *Value) Members() []Member {
	if v == nil {
		return nil
	}
	return v.members
}

// Elems returns the array's elements in document order.
func (v *Value) Elems() []*Value {
	if v == nil {
		return nil
	}
	return v.elems
}

// MemberIndex returns the position of key within the object, or -1.
func (v *Value) MemberIndex(key string) int {
	if v == nil {
		return -1
	}
	for i, m := range v.members {
		if m.Key == key {
			return i
		}
	}
	return -1
}

// Member returns the value stored under key, if present.
func (v *Value) Member(key string) (*Value, bool) {
	i := v.MemberIndex(key)
	if i < 0 {
		return nil, false
	}
	return v.members[i].Value, true
}

// SetMember replaces the value under key, or appends a new member when the
// key is absent. Existing member order is preserved.
func (v *Value) SetMember(key string, val *Value) {
	if i := v.MemberIndex(key); i >= 0 {
		v.members[i].Value = val
		return
	}
	v.members = append(v.members, Member{Key: key, Value: val})
}

// RemoveMember deletes the member under key. It reports whether the key was
// present.
func (v *Value) RemoveMember(key string) bool {
	i := v.MemberIndex(key)
	if i < 0 {
		return false
	}
	v.members = append(v.members[:i], v.members[i+1:]...)
	return true
}

// Elem returns the i'th element. Negative indices count from the end.
func (v *Value) Elem(i int) *Value {
	if i < 0 {
		i += len(v.elems)
	}
	return v.elems[i]
}

// SetElem replaces the i'th element. Negative indices count from the end.
func (v *Value) SetElem(i int, val *Value) {
	if i < 0 {
		i += len(v.elems)
	}
	v.elems[i] = val
}

// InsertElem inserts val at position i, shifting later elements up.
func (v *Value) InsertElem(i int, val *Value) {
	if i < 0 {
		i += len(v.elems)
	}
	v.elems = append(v.elems, nil)
	copy(v.elems[i+1:], v.elems[i:])
	v.elems[i] = val
}

// RemoveElem deletes the i'th element, shifting later elements down.
func (v *Value) RemoveElem(i int) {
	if i < 0 {
		i += len(v.elems)
	}
	v.elems = append(v.elems[:i], v.elems[i+1:]...)
}

// DeepCopy returns a structurally independent copy of the value.
func (v *Value) DeepCopy() *Value {
	if v == nil {
		return Null()
	}
	cp := &Value{kind: v.kind, b: v.b, raw: v.raw, str: v.str}
	if v.kind == KindObject {
		cp.members = make([]Member, len(v.members))
		for i, m := range v.members {
			cp.members[i] = Member{Key: m.Key, Value: m.Value.DeepCopy()}
		}
	}
	if v.kind == KindArray {
		cp.elems = make([]*Value, len(v.elems))
		for i, e := range v.elems {
			cp.elems[i] = e.DeepCopy()
		}
	}
	return cp
}

// Equal reports deep structural equality, including member order. Numbers
// compare by literal.
func (v *Value) Equal(other *Value) bool {
	if v.Kind() != other.Kind() {
		return false
	}
	switch v.Kind() {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindInt, KindFloat:
		return v.raw == other.raw
	case KindString:
		return v.str == other.str
	case KindObject:
		if len(v.members) != len(other.members) {
			return false
		}
		for i, m := range v.members {
			om := other.members[i]
			if m.Key != om.Key || !m.Value.Equal(om.Value) {
				return false
			}
		}
		return true
	case KindArray:
		if len(v.elems) != len(other.elems) {
			return false
		}
		for i, e := range v.elems {
			if !e.Equal(other.elems[i]) {
				return false
			}
		}
		return true
	}
	return false
}

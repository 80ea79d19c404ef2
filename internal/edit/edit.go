// Package edit implements the mutating operations over a document. Every
// operation takes the whole document plus a parsed segment list and returns
// the (possibly replaced) document root.
package edit

import (
	"github.com/mcncl/jstool/internal/errors"
	"github.com/mcncl/jstool/internal/models"
	"github.com/mcncl/jstool/internal/path"
)

// Set assigns newVal at the addressed location. Setting root replaces the
// whole document.
func Set(doc *models.Value, segments []path.Segment, newVal *models.Value) (*models.Value, error) {
	if len(segments) == 0 {
		return newVal, nil
	}
	parent, key, _, err := path.Navigate(doc, segments)
	if err != nil {
		return nil, err
	}
	assign(parent, key, newVal)
	return doc, nil
}

// Delete removes the addressed key or array element. Deleting root is
// invalid.
func Delete(doc *models.Value, segments []path.Segment) (*models.Value, error) {
	if len(segments) == 0 {
		return nil, errors.NewEditError("cannot delete root", errors.ErrRootEdit)
	}
	parent, key, _, err := path.Navigate(doc, segments)
	if err != nil {
		return nil, err
	}
	if key.IsIndex {
		parent.RemoveElem(key.Index)
	} else {
		parent.RemoveMember(key.Key)
	}
	return doc, nil
}

// InsertBefore inserts newVal immediately before the addressed array
// element, shifting later elements up.
func InsertBefore(doc *models.Value, segments []path.Segment, newVal *models.Value) (*models.Value, error) {
	return insert(doc, segments, newVal, 0, "before")
}

// InsertAfter inserts newVal immediately after the addressed array element.
func InsertAfter(doc *models.Value, segments []path.Segment, newVal *models.Value) (*models.Value, error) {
	return insert(doc, segments, newVal, 1, "after")
}

func insert(doc *models.Value, segments []path.Segment, newVal *models.Value, shift int, mode string) (*models.Value, error) {
	if len(segments) == 0 {
		return nil, errors.NewEditError("cannot insert "+mode+" root", errors.ErrRootEdit)
	}
	parent, key, _, err := path.Navigate(doc, segments)
	if err != nil {
		return nil, err
	}
	if !parent.IsArray() {
		return nil, errors.NewEditError(
			"'"+mode+"' only works on array elements", errors.ErrNotArrayElement)
	}
	idx := key.Index
	if idx < 0 {
		idx += parent.Len()
	}
	parent.InsertElem(idx+shift, newVal)
	return doc, nil
}

// SetNull assigns a literal null at the addressed location; root becomes
// null.
func SetNull(doc *models.Value, segments []path.Segment) (*models.Value, error) {
	return Set(doc, segments, models.Null())
}

// Copy deep-copies the value at src and assigns it at dst with Set
// semantics.
func Copy(doc *models.Value, src, dst []path.Segment) (*models.Value, error) {
	_, _, srcVal, err := path.Navigate(doc, src)
	if err != nil {
		return nil, err
	}
	return Set(doc, dst, srcVal.DeepCopy())
}

// Merge deep-merges patch into the value at the addressed location.
func Merge(doc *models.Value, segments []path.Segment, patch *models.Value) (*models.Value, error) {
	if len(segments) == 0 {
		return DeepMerge(doc, patch), nil
	}
	parent, key, node, err := path.Navigate(doc, segments)
	if err != nil {
		return nil, err
	}
	assign(parent, key, DeepMerge(node, patch))
	return doc, nil
}

// DeepMerge merges patch into base. Two objects merge key-by-key: keys only
// in patch are added, keys in both merge recursively. Any other pairing is
// replaced wholesale by patch; arrays are never merged element-wise.
func DeepMerge(base, patch *models.Value) *models.Value {
	if !base.IsObject() || !patch.IsObject() {
		return patch
	}
	result := models.NewObject(append([]models.Member{}, base.Members()...)...)
	for _, m := range patch.Members() {
		if existing, ok := result.Member(m.Key); ok {
			result.SetMember(m.Key, DeepMerge(existing, m.Value))
		} else {
			result.SetMember(m.Key, m.Value)
		}
	}
	return result
}

func assign(parent *models.Value, key path.Segment, val *models.Value) {
	if key.IsIndex {
		parent.SetElem(key.Index, val)
	} else {
		parent.SetMember(key.Key, val)
	}
}

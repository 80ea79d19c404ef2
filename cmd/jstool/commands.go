package main

import (
	"fmt"
	"log/slog"

	"github.com/mcncl/jstool/internal/edit"
	"github.com/mcncl/jstool/internal/flatten"
	"github.com/mcncl/jstool/internal/models"
	"github.com/mcncl/jstool/internal/parser"
	"github.com/mcncl/jstool/internal/path"
	"github.com/mcncl/jstool/internal/preview"
	"github.com/mcncl/jstool/internal/schema"
)

// ViewCmd renders the flattened row view.
type ViewCmd struct {
	File       string `arg:"" optional:"" help:"JSON file (stdin if omitted)." type:"path"`
	Schema     bool   `short:"s" help:"Collapse array indices to [*] and deduplicate rows."`
	Filter     string `short:"F" placeholder:"PATH" help:"Only show rows at or under this path."`
	Limit      *int   `short:"n" placeholder:"N" help:"Show at most N rows."`
	Offset     int    `short:"O" placeholder:"N" help:"Skip the first N rows."`
	ElemOffset int    `short:"E" placeholder:"N" help:"Skip the first N array elements under the filter path."`
	ElemLimit  *int   `short:"L" placeholder:"N" help:"Show at most N array elements under the filter path."`
}

func (v *ViewCmd) Run(app *Context) error {
	doc, _, err := readDocument(v.File)
	if err != nil {
		return err
	}

	rows := flatten.InferNulls(flatten.Flatten(doc))
	slog.Debug("document flattened", "rows", len(rows))

	if v.Schema {
		rows = flatten.SchemaRows(rows)
	}
	if v.Filter != "" {
		rows = flatten.FilterRows(rows, v.Filter)
	}

	// Element-level slicing needs a filter path to delimit elements; without
	// one, -E degrades to a plain row offset.
	offset := v.Offset
	elemFooter := ""
	if (v.ElemOffset > 0 || v.ElemLimit != nil) && v.Filter != "" {
		totalElems := -1
		if v.ElemOffset > 0 {
			rows, totalElems = flatten.ElemOffsetRows(rows, v.Filter, v.ElemOffset)
		}
		if v.ElemLimit != nil {
			var te int
			rows, te = flatten.ElemLimitRows(rows, v.Filter, *v.ElemLimit)
			if totalElems < 0 {
				totalElems = te
			}
		} else if totalElems < 0 {
			_, totalElems = flatten.ElemOffsetRows(rows, v.Filter, 0)
		}

		shown := totalElems - v.ElemOffset
		if v.ElemLimit != nil {
			shown = *v.ElemLimit
		}
		elemFooter = fmt.Sprintf("  (elements %d–%d of %d)",
			v.ElemOffset, v.ElemOffset+shown-1, totalElems)
	} else if v.ElemOffset > 0 {
		offset = v.ElemOffset
	}

	total := len(rows)
	if offset < len(rows) {
		rows = rows[offset:]
	} else {
		rows = nil
	}
	if v.Limit != nil && *v.Limit < len(rows) {
		rows = rows[:*v.Limit]
	}

	for _, row := range rows {
		fmt.Println(row.Format())
	}

	paginated := offset > 0 || v.Limit != nil || v.ElemOffset > 0 || v.ElemLimit != nil
	if paginated {
		fmt.Printf("── showing rows %d–%d of %d%s ──\n",
			offset+1, offset+len(rows), total, elemFooter)
	}
	return nil
}

// SchemaCmd prints an inferred draft-07 JSON Schema.
type SchemaCmd struct {
	File  string `arg:"" optional:"" help:"JSON file (stdin if omitted)." type:"path"`
	Title string `help:"Schema title (default: derived from the filename)."`
}

func (s *SchemaCmd) Run(app *Context) error {
	doc, _, err := readDocument(s.File)
	if err != nil {
		return err
	}
	title := s.Title
	if title == "" {
		title = schema.DefaultTitle(s.File, app.Config.SchemaTitle)
	}
	fmt.Print(schema.RenderDocument(doc, title, app.Config.SchemaSampleLimit))
	return nil
}

// SetCmd assigns a value at a path.
type SetCmd struct {
	Path  string `arg:"" help:"Target path (e.g. users[0].name, root)."`
	Value string `arg:"" help:"JSON literal, plain string, or @file."`
	File  string `arg:"" optional:"" help:"JSON file (stdin if omitted)." type:"path"`
	Force bool   `short:"f" help:"Apply the change (default: preview only)."`
}

func (c *SetCmd) Run(app *Context) error {
	doc, filePath, err := readDocument(c.File)
	if err != nil {
		return err
	}
	segments, err := path.Parse(c.Path)
	if err != nil {
		return err
	}
	newVal, err := parser.ParseValueArg(c.Value)
	if err != nil {
		return err
	}
	if !c.Force {
		return newRenderer(app).Set(doc, segments, newVal, c.Path)
	}
	result, err := edit.Set(doc, segments, newVal)
	if err != nil {
		return err
	}
	return emitResult(result, filePath)
}

// BeforeCmd inserts a value before an array element.
type BeforeCmd struct {
	Path  string `arg:"" help:"Array element path (e.g. tags[2])."`
	Value string `arg:"" help:"JSON literal, plain string, or @file."`
	File  string `arg:"" optional:"" help:"JSON file (stdin if omitted)." type:"path"`
	Force bool   `short:"f" help:"Apply the change (default: preview only)."`
}

func (c *BeforeCmd) Run(app *Context) error {
	return runInsert(app, c.Path, c.Value, c.File, c.Force, preview.Before, edit.InsertBefore)
}

// AfterCmd inserts a value after an array element.
type AfterCmd struct {
	Path  string `arg:"" help:"Array element path (e.g. tags[2])."`
	Value string `arg:"" help:"JSON literal, plain string, or @file."`
	File  string `arg:"" optional:"" help:"JSON file (stdin if omitted)." type:"path"`
	Force bool   `short:"f" help:"Apply the change (default: preview only)."`
}

func (c *AfterCmd) Run(app *Context) error {
	return runInsert(app, c.Path, c.Value, c.File, c.Force, preview.After, edit.InsertAfter)
}

func runInsert(app *Context, pathStr, valueStr, fileArg string, force bool, mode preview.Mode,
	apply func(*models.Value, []path.Segment, *models.Value) (*models.Value, error)) error {
	doc, filePath, err := readDocument(fileArg)
	if err != nil {
		return err
	}
	segments, err := path.Parse(pathStr)
	if err != nil {
		return err
	}
	newVal, err := parser.ParseValueArg(valueStr)
	if err != nil {
		return err
	}
	if !force {
		return newRenderer(app).Insert(doc, segments, newVal, pathStr, mode)
	}
	result, err := apply(doc, segments, newVal)
	if err != nil {
		return err
	}
	return emitResult(result, filePath)
}

// DelCmd deletes a key or array element.
type DelCmd struct {
	Path  string `arg:"" help:"Target path."`
	File  string `arg:"" optional:"" help:"JSON file (stdin if omitted)." type:"path"`
	Force bool   `short:"f" help:"Apply the change (default: preview only)."`
}

func (c *DelCmd) Run(app *Context) error {
	doc, filePath, err := readDocument(c.File)
	if err != nil {
		return err
	}
	segments, err := path.Parse(c.Path)
	if err != nil {
		return err
	}
	if !c.Force {
		return newRenderer(app).Delete(doc, segments, c.Path)
	}
	result, err := edit.Delete(doc, segments)
	if err != nil {
		return err
	}
	return emitResult(result, filePath)
}

// SetNullCmd sets a value to null.
type SetNullCmd struct {
	Path  string `arg:"" help:"Target path."`
	File  string `arg:"" optional:"" help:"JSON file (stdin if omitted)." type:"path"`
	Force bool   `short:"f" help:"Apply the change (default: preview only)."`
}

func (c *SetNullCmd) Run(app *Context) error {
	doc, filePath, err := readDocument(c.File)
	if err != nil {
		return err
	}
	segments, err := path.Parse(c.Path)
	if err != nil {
		return err
	}
	if !c.Force {
		return newRenderer(app).SetNull(doc, segments, c.Path)
	}
	result, err := edit.SetNull(doc, segments)
	if err != nil {
		return err
	}
	return emitResult(result, filePath)
}

// CopyCmd copies a value from one path to another.
type CopyCmd struct {
	Src   string `arg:"" help:"Source path."`
	Dst   string `arg:"" help:"Destination path."`
	File  string `arg:"" optional:"" help:"JSON file (stdin if omitted)." type:"path"`
	Force bool   `short:"f" help:"Apply the change (default: preview only)."`
}

func (c *CopyCmd) Run(app *Context) error {
	doc, filePath, err := readDocument(c.File)
	if err != nil {
		return err
	}
	srcSegs, err := path.Parse(c.Src)
	if err != nil {
		return err
	}
	dstSegs, err := path.Parse(c.Dst)
	if err != nil {
		return err
	}
	if !c.Force {
		return newRenderer(app).Copy(doc, srcSegs, dstSegs, c.Src, c.Dst)
	}
	result, err := edit.Copy(doc, srcSegs, dstSegs)
	if err != nil {
		return err
	}
	return emitResult(result, filePath)
}

// MergeCmd deep-merges a patch file into a path.
type MergeCmd struct {
	Path  string `arg:"" help:"Target path (root for the whole document)."`
	Patch string `arg:"" help:"Path to the JSON patch file." type:"path"`
	File  string `arg:"" optional:"" help:"JSON file (stdin if omitted)." type:"path"`
	Force bool   `short:"f" help:"Apply the change (default: preview only)."`
}

func (c *MergeCmd) Run(app *Context) error {
	doc, filePath, err := readDocument(c.File)
	if err != nil {
		return err
	}
	segments, err := path.Parse(c.Path)
	if err != nil {
		return err
	}
	patch, err := parser.ParseFile(c.Patch)
	if err != nil {
		return err
	}
	if !c.Force {
		return newRenderer(app).Merge(doc, segments, patch, c.Path, c.Patch)
	}
	result, err := edit.Merge(doc, segments, patch)
	if err != nil {
		return err
	}
	return emitResult(result, filePath)
}

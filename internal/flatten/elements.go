package flatten

import (
	"regexp"
	"strconv"
)

// elementGroups splits filtered rows into header rows (paths that are not
// direct children of filterPath) and per-element row groups, keyed by the
// element index and kept in first-seen order.
func elementGroups(rows []Row, filterPath string) (headers []Row, order []int, groups map[int][]Row) {
	elemRe := regexp.MustCompile(`^` + regexp.QuoteMeta(filterPath) + `\[(\d+)\]`)
	groups = make(map[int][]Row)
	for _, row := range rows {
		m := elemRe.FindStringSubmatch(row.Path)
		if m == nil {
			headers = append(headers, row)
			continue
		}
		idx, _ := strconv.Atoi(m[1])
		if _, ok := groups[idx]; !ok {
			order = append(order, idx)
		}
		groups[idx] = append(groups[idx], row)
	}
	return headers, order, groups
}

// ElemOffsetRows skips the first elemSkip array elements under filterPath.
// Header rows are always kept. Returns the remaining rows and the total
// element count before slicing.
func ElemOffsetRows(rows []Row, filterPath string, elemSkip int) ([]Row, int) {
	headers, order, groups := elementGroups(rows, filterPath)
	total := len(order)
	kept := order
	if elemSkip < len(kept) {
		kept = kept[elemSkip:]
	} else {
		kept = nil
	}
	result := append([]Row{}, headers...)
	for _, idx := range kept {
		result = append(result, groups[idx]...)
	}
	return result, total
}

// ElemLimitRows keeps only the first elemCount array elements under
// filterPath. Header rows are always kept. Returns the remaining rows and
// the total element count before slicing.
func ElemLimitRows(rows []Row, filterPath string, elemCount int) ([]Row, int) {
	headers, order, groups := elementGroups(rows, filterPath)
	total := len(order)
	kept := order
	if elemCount < len(kept) {
		kept = kept[:elemCount]
	}
	result := append([]Row{}, headers...)
	for _, idx := range kept {
		result = append(result, groups[idx]...)
	}
	return result, total
}

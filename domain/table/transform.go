package table

import (
	"math"
	"sort"
)

// Pure row transforms for the raw result path. Each returns a new Table;
// the input is never modified.

// FilterFinite returns a new table with every row dropped where any of the
// named columns holds a non-finite or missing value. Numeric columns treat
// NaN and ±Inf as missing; time columns treat the zero time as missing.
// Row order is preserved, so the output stays sorted by original row index.
func FilterFinite(t *Table, names ...string) *Table {
	if t == nil {
		return nil
	}
	keep := make([]int, 0, t.RowCount())
	for i := 0; i < t.RowCount(); i++ {
		if rowComplete(t, i, names) {
			keep = append(keep, i)
		}
	}
	return t.SelectRows(keep)
}

func rowComplete(t *Table, row int, names []string) bool {
	for _, name := range names {
		col, ok := t.Column(name)
		if !ok {
			return false
		}
		switch col.Kind {
		case KindNumeric:
			v := col.Floats[row]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		case KindString:
			if col.Strings[row] == "" {
				return false
			}
		case KindTime:
			if col.Times[row].IsZero() {
				return false
			}
		}
	}
	return true
}

// SortByTime returns a new table sorted ascending by the named time column.
// The sort is stable: rows with equal timestamps keep their original order.
func SortByTime(t *Table, name string) (*Table, bool) {
	col, ok := t.Column(name)
	if !ok || col.Kind != KindTime {
		return t, false
	}
	order := make([]int, t.RowCount())
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return col.Times[order[a]].Before(col.Times[order[b]])
	})
	return t.SelectRows(order), true
}

// OrderForPlot applies the deterministic raw-path ordering: drop incomplete
// rows for the given columns, then sort by the datetime column when one is
// configured, otherwise keep original row-index order.
func OrderForPlot(t *Table, datetimeColumn string, names ...string) *Table {
	filterCols := names
	if datetimeColumn != "" {
		filterCols = append(append([]string{}, names...), datetimeColumn)
	}
	filtered := FilterFinite(t, filterCols...)
	if datetimeColumn != "" {
		if sorted, ok := SortByTime(filtered, datetimeColumn); ok {
			return sorted
		}
	}
	return filtered
}

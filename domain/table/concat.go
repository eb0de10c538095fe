package table

import (
	"fmt"
)

// Concat appends tables with identical schemas (same column names and
// kinds, same order) into a new table. Used by the tabular view to stack
// per-metric rows within one group.
func Concat(tables ...*Table) (*Table, error) {
	if len(tables) == 0 {
		return &Table{}, nil
	}
	first := tables[0]
	columns := make([]Column, len(first.Columns))
	for i, col := range first.Columns {
		columns[i] = Column{Name: col.Name, Kind: col.Kind}
	}
	for _, t := range tables {
		if len(t.Columns) != len(columns) {
			return nil, fmt.Errorf("cannot concat tables: column count %d != %d", len(t.Columns), len(columns))
		}
		for i, col := range t.Columns {
			if col.Name != columns[i].Name || col.Kind != columns[i].Kind {
				return nil, fmt.Errorf("cannot concat tables: column %d is %s/%s, expected %s/%s",
					i, col.Name, col.Kind, columns[i].Name, columns[i].Kind)
			}
			columns[i].Floats = append(columns[i].Floats, col.Floats...)
			columns[i].Strings = append(columns[i].Strings, col.Strings...)
			columns[i].Times = append(columns[i].Times, col.Times...)
		}
	}
	return New(columns...)
}

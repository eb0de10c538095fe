package table

import (
	"fmt"
	"time"
)

// Kind defines the value type of a column
type Kind string

const (
	KindNumeric Kind = "numeric"
	KindString  Kind = "string"
	KindTime    Kind = "time"
)

// Column is a single named column of row-aligned values.
// Exactly one of the value slices is populated, matching Kind.
type Column struct {
	Name    string      `json:"name"`
	Kind    Kind        `json:"kind"`
	Floats  []float64   `json:"floats,omitempty"`
	Strings []string    `json:"strings,omitempty"`
	Times   []time.Time `json:"times,omitempty"`
}

// NumericColumn creates a numeric column
func NumericColumn(name string, values []float64) Column {
	return Column{Name: name, Kind: KindNumeric, Floats: values}
}

// StringColumn creates a string column
func StringColumn(name string, values []string) Column {
	return Column{Name: name, Kind: KindString, Strings: values}
}

// TimeColumn creates a time column
func TimeColumn(name string, values []time.Time) Column {
	return Column{Name: name, Kind: KindTime, Times: values}
}

// Len returns the number of values in the column
func (c Column) Len() int {
	switch c.Kind {
	case KindNumeric:
		return len(c.Floats)
	case KindString:
		return len(c.Strings)
	case KindTime:
		return len(c.Times)
	}
	return 0
}

// Table is row-aligned named-column data. Transforms never mutate a Table
// in place; they return new Tables.
type Table struct {
	Columns []Column `json:"columns"`
}

// New creates a table from columns, validating row alignment and name uniqueness
func New(columns ...Column) (*Table, error) {
	seen := make(map[string]bool, len(columns))
	rows := -1
	for _, col := range columns {
		if col.Name == "" {
			return nil, fmt.Errorf("column name cannot be empty")
		}
		if seen[col.Name] {
			return nil, fmt.Errorf("duplicate column name %q", col.Name)
		}
		seen[col.Name] = true
		if rows == -1 {
			rows = col.Len()
		} else if col.Len() != rows {
			return nil, fmt.Errorf("column %q has %d rows, expected %d", col.Name, col.Len(), rows)
		}
	}
	return &Table{Columns: columns}, nil
}

// MustNew creates a table and panics on invalid input.
// Use only in tests and fixtures.
func MustNew(columns ...Column) *Table {
	t, err := New(columns...)
	if err != nil {
		panic(err)
	}
	return t
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	if t == nil || len(t.Columns) == 0 {
		return 0
	}
	return t.Columns[0].Len()
}

// ColumnCount returns the number of columns
func (t *Table) ColumnCount() int {
	if t == nil {
		return 0
	}
	return len(t.Columns)
}

// Column returns the named column
func (t *Table) Column(name string) (Column, bool) {
	if t == nil {
		return Column{}, false
	}
	for _, col := range t.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return Column{}, false
}

// HasColumn reports whether the named column exists
func (t *Table) HasColumn(name string) bool {
	_, ok := t.Column(name)
	return ok
}

// Names returns column names in declaration order
func (t *Table) Names() []string {
	if t == nil {
		return nil
	}
	names := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i] = col.Name
	}
	return names
}

// Floats returns the values of a numeric column
func (t *Table) Floats(name string) ([]float64, bool) {
	col, ok := t.Column(name)
	if !ok || col.Kind != KindNumeric {
		return nil, false
	}
	return col.Floats, true
}

// SelectRows returns a new table containing the given row indices, in order.
// Out-of-range indices are a programming error and panic via slice bounds.
func (t *Table) SelectRows(indices []int) *Table {
	if t == nil {
		return nil
	}
	columns := make([]Column, len(t.Columns))
	for i, col := range t.Columns {
		out := Column{Name: col.Name, Kind: col.Kind}
		switch col.Kind {
		case KindNumeric:
			out.Floats = make([]float64, len(indices))
			for j, idx := range indices {
				out.Floats[j] = col.Floats[idx]
			}
		case KindString:
			out.Strings = make([]string, len(indices))
			for j, idx := range indices {
				out.Strings[j] = col.Strings[idx]
			}
		case KindTime:
			out.Times = make([]time.Time, len(indices))
			for j, idx := range indices {
				out.Times[j] = col.Times[idx]
			}
		}
		columns[i] = out
	}
	return &Table{Columns: columns}
}

// WithColumns returns a new table with extra columns appended
func (t *Table) WithColumns(extra ...Column) (*Table, error) {
	combined := make([]Column, 0, len(t.Columns)+len(extra))
	combined = append(combined, t.Columns...)
	combined = append(combined, extra...)
	return New(combined...)
}
